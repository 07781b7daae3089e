package report

import (
	"fmt"
	"strings"
	"time"

	"xray-insight/internal/classifier"
)

// RiskLevel tiers a finding by its confidence.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Confidence thresholds for report inclusion and risk tiering.
const (
	summaryThreshold    = 0.1
	detailedThreshold   = 0.05
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.3
	summaryTopN         = 5
)

// RiskFor tiers a confidence value.
func RiskFor(confidence float64) RiskLevel {
	switch {
	case confidence > highRiskThreshold:
		return RiskHigh
	case confidence > mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Summary renders an executive summary of the top findings above the
// summary threshold.
func Summary(preds classifier.PredictionSet) string {
	var b strings.Builder
	b.WriteString("Executive Summary:\n")

	for i, p := range preds.Ranked() {
		if i >= summaryTopN || p.Confidence <= summaryThreshold {
			break
		}
		fmt.Fprintf(&b, "- %s (%.1f%% probability): %s\n",
			p.Class, p.Confidence*100, Description(p.Class))
	}

	return b.String()
}

// Detailed renders the full analysis report: every finding above the
// detailed threshold with description, risk tier, urgency, and
// recommendation, followed by interpretation notes and limitations.
func Detailed(preds classifier.PredictionSet, now time.Time) string {
	var b strings.Builder

	b.WriteString("Comprehensive Chest X-Ray Analysis Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", now.Format("2006-01-02 15:04:05"))

	b.WriteString("1. Overview\n")
	b.WriteString("This report provides AI-assisted analysis of the chest X-ray using pre-trained deep learning models. ")
	b.WriteString("Probabilities indicate likelihood of detected pathologies. All findings should be verified by a qualified radiologist.\n\n")

	b.WriteString("2. Detailed Probability Analysis\n")
	ranked := preds.Ranked()
	for _, p := range ranked {
		if p.Confidence <= detailedThreshold {
			continue
		}
		risk := RiskFor(p.Confidence)
		fmt.Fprintf(&b, "- %s: %.2f%%\n", p.Class, p.Confidence*100)
		fmt.Fprintf(&b, "  Description: %s\n", Description(p.Class))
		fmt.Fprintf(&b, "  Risk Level: %s\n", risk)
		fmt.Fprintf(&b, "  Urgency: %s\n", Urgency(p.Class))
		fmt.Fprintf(&b, "  Recommendation: %s\n\n", recommendations[risk])
	}

	b.WriteString("3. Interpretation Notes\n")
	primary := "Normal"
	if len(ranked) > 0 {
		primary = ranked[0].Class
	}
	fmt.Fprintf(&b, "- Primary finding: %s\n", primary)
	fmt.Fprintf(&b, "- %s\n", Urgency(primary))
	b.WriteString("- Probabilities above 50% indicate strong likelihood and warrant attention.\n")
	b.WriteString("- Multiple findings may indicate complex conditions.\n")
	b.WriteString("- Always correlate with clinical symptoms.\n\n")

	b.WriteString("4. Limitations\n")
	b.WriteString("This AI analysis is based on pre-trained models and may not detect all conditions, ")
	b.WriteString("especially rare or subtle abnormalities. Not a substitute for professional medical advice.\n")

	return b.String()
}
