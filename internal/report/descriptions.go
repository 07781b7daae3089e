// Package report renders analysis results as text reports and manages the
// temporary raster artifacts embedded in them.
package report

// descriptions holds a plain-language note per pathology. Lookups fall back
// to defaultDescription for classes without an entry.
var descriptions = map[string]string{
	"Atelectasis":               "Partial or complete collapse of the lung, often due to blockage or pressure.",
	"Consolidation":             "Filling of lung airspaces with fluid, often seen in pneumonia.",
	"Infiltration":              "Abnormal substances in lung tissue, possibly indicating infection or inflammation.",
	"Pneumothorax":              "Collapsed lung due to air in the pleural space.",
	"Edema":                     "Fluid accumulation in lung tissue, often related to heart conditions.",
	"Emphysema":                 "Destruction of lung tissue leading to air trapping.",
	"Fibrosis":                  "Scarring of lung tissue, reducing lung function.",
	"Effusion":                  "Fluid buildup in the pleural space.",
	"Pneumonia":                 "Infection causing lung inflammation and fluid buildup.",
	"Pleural Thickening":        "Thickening of the lung lining, often from inflammation or scarring.",
	"Cardiomegaly":              "Enlarged heart, potentially indicating heart disease.",
	"Nodule":                    "Small abnormal growth in the lung.",
	"Mass":                      "Larger abnormal growth in the lung.",
	"Hernia":                    "Protrusion of abdominal contents into the chest.",
	"Lung Lesion":               "Abnormal area in the lung tissue.",
	"Fracture":                  "Bone break, possibly rib or clavicle.",
	"Lung Tumor":                "Abnormal growth in lung, potentially cancerous.",
	"Enlarged Cardiomediastinum": "Widening of the central chest area, possibly due to vascular issues.",
	"COVID":                     "Viral infection causing ground-glass opacities and consolidations.",
	"Lung_Opacity":              "Areas of increased density in the lung, various causes.",
	"Tuberculosis":              "Bacterial infection often causing cavities and infiltrates.",
	"Normal":                    "No abnormalities detected.",
}

const defaultDescription = "Description not available."

// urgency holds per-pathology urgency guidance. Lookups fall back to
// defaultUrgency.
var urgency = map[string]string{
	"Pneumonia":    "High - Seek emergency care if breathing difficulties present",
	"Tuberculosis": "Medium - Prompt medical evaluation recommended",
	"COVID":        "High - Immediate isolation and testing advised",
	"Atelectasis":  "Medium - Follow up with physician",
	"Cardiomegaly": "Medium - Cardiac evaluation recommended",
	"Pneumothorax": "High - Emergency medical attention required",
}

const defaultUrgency = "Consult a medical professional"

// recommendations maps a risk tier to follow-up advice.
var recommendations = map[RiskLevel]string{
	RiskHigh:   "Immediate medical attention recommended. Consult a physician urgently.",
	RiskMedium: "Follow-up with a healthcare provider is advised.",
	RiskLow:    "Monitor symptoms and consult if changes occur.",
}

// Description returns the plain-language note for a pathology.
func Description(class string) string {
	if d, ok := descriptions[class]; ok {
		return d
	}
	return defaultDescription
}

// Urgency returns urgency guidance for a pathology.
func Urgency(class string) string {
	if u, ok := urgency[class]; ok {
		return u
	}
	return defaultUrgency
}
