package core

const (
	appSearchPathPrefix       = "/as"
	workplaceSearchPathPrefix = "/ws"
)

// ExternalURL builds absolute links into the Enterprise Search deployment.
// It is a value type; replacing it means constructing a new one.
type ExternalURL struct {
	enterpriseSearchURL string
}

// NewExternalURL creates a helper rooted at the given base URL.
// An empty base yields relative paths.
func NewExternalURL(base string) ExternalURL {
	return ExternalURL{enterpriseSearchURL: base}
}

// EnterpriseSearchURL returns the base URL the helper was built from.
func (u ExternalURL) EnterpriseSearchURL() string {
	return u.enterpriseSearchURL
}

// AppSearchURL returns a link to path inside App Search.
func (u ExternalURL) AppSearchURL(path string) string {
	return u.external(appSearchPathPrefix + path)
}

// WorkplaceSearchURL returns a link to path inside Workplace Search.
func (u ExternalURL) WorkplaceSearchURL(path string) string {
	return u.external(workplaceSearchPathPrefix + path)
}

func (u ExternalURL) external(path string) string {
	return u.enterpriseSearchURL + path
}
