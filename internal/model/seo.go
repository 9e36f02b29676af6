package model

// SEOData holds per-page metadata injected into document head tags. Empty
// fields mean "use the caller's default".
type SEOData struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	MetaImage       string `json:"metaImage,omitempty"`
	OGTitle         string `json:"ogTitle,omitempty"`
	OGDescription   string `json:"ogDescription,omitempty"`
	OGImage         string `json:"ogImage,omitempty"`
}

// SEOSetting is a row of the `seo_settings` table. ItemID is empty for
// page-level (non item specific) metadata.
type SEOSetting struct {
	ID       string
	PageType string
	ItemID   string
	Data     SEOData
}
