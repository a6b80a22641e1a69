package feed

// Subscription feed subscription configuration structure
type Subscription struct {
	Name        string `toml:"-"`
	DisplayName string `toml:"display_name,omitempty"`
	URL         string `toml:"url"`
	Disabled    bool   `toml:"disabled"`
}

// Label returns the name shown in status output
func (s *Subscription) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.Name
}
