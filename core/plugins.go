package core

// ConfigDataPath is the server endpoint that returns the initial application data.
const ConfigDataPath = "/api/enterprise_search/config_data"

// PublicURLField is the reserved config data field that carries the public
// Enterprise Search URL. It is consumed separately and never stored as a field.
const PublicURLField = "publicUrl"

// LogoIcon is the icon shared by the Enterprise Search applications.
const LogoIcon = "logoEnterpriseSearch"

// PluginInfo describes one of the Enterprise Search applications.
type PluginInfo struct {
	ID          string
	Name        string
	NavTitle    string
	Subtitle    string
	Description string
	// Descriptions is only used by the solution entry on the home page.
	Descriptions []string
	URL          string
	Logo         string
}

// Title returns the navigation title, falling back to the plugin name.
func (p PluginInfo) Title() string {
	if p.NavTitle != "" {
		return p.NavTitle
	}
	return p.Name
}

var (
	// EnterpriseSearchPlugin is the overview application.
	EnterpriseSearchPlugin = PluginInfo{
		ID:       "enterpriseSearch",
		Name:     "Enterprise Search",
		NavTitle: "Overview",
		Subtitle: "Search everything",
		Descriptions: []string{
			"Create search experiences with a refined set of APIs and tools.",
			"Deliver search to your team across all of their tools.",
		},
		URL:  "/app/enterprise_search/overview",
		Logo: LogoIcon,
	}

	// AppSearchPlugin is the App Search application.
	AppSearchPlugin = PluginInfo{
		ID:          "appSearch",
		Name:        "App Search",
		Description: "Leverage dashboards, analytics, and APIs for advanced application search made simple.",
		URL:         "/app/enterprise_search/app_search",
	}

	// WorkplaceSearchPlugin is the Workplace Search application.
	WorkplaceSearchPlugin = PluginInfo{
		ID:          "workplaceSearch",
		Name:        "Workplace Search",
		Description: "Search all documents, files, and sources available across your virtual workplace.",
		URL:         "/app/enterprise_search/workplace_search",
	}
)

// AppCategory groups applications in the host navigation.
type AppCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Order int    `json:"order"`
	Icon  string `json:"icon,omitempty"`
}

// EnterpriseSearchCategory is the navigation category of all three applications.
var EnterpriseSearchCategory = AppCategory{
	ID:    "enterpriseSearch",
	Label: "Enterprise Search",
	Order: 2000,
	Icon:  LogoIcon,
}

// FeatureCategory is the catalogue category of a feature entry.
type FeatureCategory string

const (
	// FeatureCategoryData lists a feature under data tools.
	FeatureCategoryData FeatureCategory = "data"
	// FeatureCategoryAdmin lists a feature under administration.
	FeatureCategoryAdmin FeatureCategory = "admin"
	// FeatureCategoryOther lists a feature under everything else.
	FeatureCategoryOther FeatureCategory = "other"
)

// IsValid checks if the category is valid
func (c FeatureCategory) IsValid() bool {
	switch c {
	case FeatureCategoryData, FeatureCategoryAdmin, FeatureCategoryOther:
		return true
	default:
		return false
	}
}
