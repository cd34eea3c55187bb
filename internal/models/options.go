package models

// Known questionnaire options. "other" is always accepted as free text via Other().

var Industries = []string{
	"technology", "retail", "manufacturing", "healthcare", "finance", "education",
	"hospitality", "construction", "professional", "nonprofit", "automotive",
	"dental", "vocational",
}

// OperationalAreasByIndustry lists the sub-areas offered for each industry
var OperationalAreasByIndustry = map[string][]string{
	"technology":    {"software_dev", "it_infrastructure", "data_analytics", "cybersecurity", "product_management", "tech_support"},
	"retail":        {"inventory", "ecommerce", "store_operations", "supply_chain", "customer_experience", "merchandising"},
	"manufacturing": {"production", "quality_control", "supply_chain", "maintenance", "inventory", "safety"},
	"healthcare":    {"patient_care", "medical_records", "billing", "scheduling", "compliance", "pharmacy"},
	"finance":       {"accounting", "financial_planning", "investment", "lending", "compliance", "customer_service"},
	"education":     {"curriculum", "student_services", "administration", "enrollment", "technology", "assessment"},
	"hospitality":   {"reservations", "guest_services", "food_beverage", "housekeeping", "events", "revenue_management"},
	"construction":  {"project_management", "estimating", "site_operations", "safety", "procurement", "design"},
	"professional":  {"client_management", "project_delivery", "billing", "knowledge_management", "compliance", "business_development"},
	"nonprofit":     {"fundraising", "program_management", "volunteer", "grant_management", "donor_relations", "community_outreach"},
	"automotive":    {"sales", "service", "inventory", "finance", "customer_service", "marketing"},
	"dental":        {"patient_care", "scheduling", "billing", "inventory", "patient_records", "compliance"},
	"vocational":    {"curriculum", "student_services", "enrollment", "job_placement", "compliance", "facilities"},
	"other":         {"finance", "marketing", "operations", "hr", "customer", "product", "it", "legal", "strategy"},
}

var CurrentApproaches = []string{
	"manual", "spreadsheets", "software", "outsourcing", "ignoring", "custom",
}

// IsKnownIndustry reports whether value is a predefined industry
func IsKnownIndustry(value string) bool {
	return containsString(Industries, value)
}

// IsKnownOperationalArea reports whether value is offered for any industry
func IsKnownOperationalArea(value string) bool {
	for _, areas := range OperationalAreasByIndustry {
		if containsString(areas, value) {
			return true
		}
	}
	return false
}

// IsOperationalAreaOffered reports whether area is listed for industry.
// A free-text industry uses the "other" list.
func IsOperationalAreaOffered(industry Choice, area string) bool {
	key := industry.KnownValue()
	if industry.IsOther() {
		key = "other"
	}
	return containsString(OperationalAreasByIndustry[key], area)
}

// IsKnownApproach reports whether value is a predefined current approach
func IsKnownApproach(value string) bool {
	return containsString(CurrentApproaches, value)
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
