package approval

import (
	"fmt"

	"medispa-app-server/internal/models"
)

var preCareTemplates = []string{
	"Hi %s, your treatment is coming up. Please arrive with clean skin, avoid retinoids for 48 hours beforehand, and stay well hydrated.",
	"Hi %s, a quick reminder before your visit: skip exfoliants for two days, avoid direct sun, and drink plenty of water.",
	"Hello %s, to get the best results from your upcoming treatment please avoid alcohol for 24 hours and arrive make-up free.",
}

var postCareTemplates = []string{
	"Hi %s, thank you for visiting us today. Keep the treated area clean, apply SPF 30+ daily, and avoid strenuous exercise for 24 hours.",
	"Hi %s, some aftercare reminders: avoid touching the treated area, skip hot showers and saunas today, and moisturise gently.",
	"Hello %s, we hope you loved your visit. Please avoid direct sunlight on the treated area and reach out if you notice unusual redness.",
}

// TemplateGenerator is the default message generator: it rotates through
// the stock templates for the card's kind so each regeneration attempt
// produces different copy.
func TemplateGenerator(kind models.NotificationKind, patientName string, attempt int) (string, error) {
	templates := postCareTemplates
	if kind == models.NotificationPreCare {
		templates = preCareTemplates
	}
	if patientName == "" {
		patientName = "there"
	}
	return fmt.Sprintf(templates[attempt%len(templates)], patientName), nil
}

// messageVariants lists the messages CycleVariant rotates through:
// the original, the AI replacement when present, then the stock
// alternatives for the card's kind.
func messageVariants(original, aiGenerated string, kind models.NotificationKind, patientName string) []string {
	variants := []string{original}
	if aiGenerated != "" && aiGenerated != original {
		variants = append(variants, aiGenerated)
	}
	templates := postCareTemplates
	if kind == models.NotificationPreCare {
		templates = preCareTemplates
	}
	if patientName == "" {
		patientName = "there"
	}
	for _, t := range templates {
		m := fmt.Sprintf(t, patientName)
		if m != original && m != aiGenerated {
			variants = append(variants, m)
		}
	}
	return variants
}
