package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xray-insight/internal/classifier"
)

func TestRiskForTiers(t *testing.T) {
	require.Equal(t, RiskHigh, RiskFor(0.8))
	require.Equal(t, RiskMedium, RiskFor(0.5))
	require.Equal(t, RiskLow, RiskFor(0.1))
	require.Equal(t, RiskMedium, RiskFor(0.31))
	require.Equal(t, RiskLow, RiskFor(0.3))
}

func TestSummaryIncludesOnlySignificantFindings(t *testing.T) {
	preds := classifier.PredictionSet{
		{Class: "Pneumonia", Confidence: 0.85},
		{Class: "Edema", Confidence: 0.05}, // below threshold
	}

	s := Summary(preds)
	require.Contains(t, s, "Pneumonia (85.0% probability)")
	require.Contains(t, s, Description("Pneumonia"))
	require.NotContains(t, s, "Edema")
}

func TestSummaryCapsAtTopFive(t *testing.T) {
	preds := classifier.PredictionSet{
		{Class: "Pneumonia", Confidence: 0.9},
		{Class: "Tuberculosis", Confidence: 0.8},
		{Class: "COVID", Confidence: 0.7},
		{Class: "Edema", Confidence: 0.6},
		{Class: "Effusion", Confidence: 0.5},
		{Class: "Fibrosis", Confidence: 0.4},
	}

	s := Summary(preds)
	require.Contains(t, s, "Effusion")
	require.NotContains(t, s, "Fibrosis")
}

func TestDetailedReportStructure(t *testing.T) {
	preds := classifier.PredictionSet{
		{Class: "Pneumonia", Confidence: 0.85},
		{Class: "Normal", Confidence: 0.10},
	}

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	r := Detailed(preds, now)

	require.Contains(t, r, "Generated on: 2026-03-14 09:30:00")
	require.Contains(t, r, "Primary finding: Pneumonia")
	require.Contains(t, r, "Risk Level: High")
	require.Contains(t, r, Urgency("Pneumonia"))
	require.Contains(t, r, "4. Limitations")

	// Findings are listed most confident first
	require.Less(t, strings.Index(r, "- Pneumonia:"), strings.Index(r, "- Normal:"))
}

func TestDescriptionFallback(t *testing.T) {
	require.Equal(t, defaultDescription, Description("Made Up Condition"))
	require.Equal(t, defaultUrgency, Urgency("Made Up Condition"))
}
