package models

// AppType tags how an application's files are fetched and installed.
type AppType string

const (
	TypeGitRepo AppType = "git_repo"
	TypeHgRepo  AppType = "hg_repo"
	TypeFile    AppType = "file"
	TypeArchive AppType = "archive"
)

// AllTypes is the processing order of the orchestrator buckets.
var AllTypes = []AppType{TypeGitRepo, TypeHgRepo, TypeFile, TypeArchive}

func (t AppType) Valid() bool {
	switch t {
	case TypeGitRepo, TypeHgRepo, TypeFile, TypeArchive:
		return true
	}
	return false
}

// VCS returns the version-control command for repo types, "" otherwise.
func (t AppType) VCS() string {
	switch t {
	case TypeGitRepo:
		return "git"
	case TypeHgRepo:
		return "hg"
	}
	return ""
}

// Frequency is how often an application should be refreshed.
type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Monthly    Frequency = "monthly"
	Semestrial Frequency = "semestrial"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Semestrial:
		return true
	}
	return false
}

// AssetMatch selects one asset out of a GitHub release by name. Absent
// predicates are vacuously true.
type AssetMatch struct {
	Contains   string `yaml:"contains,omitempty"`
	StartsWith string `yaml:"starts_with,omitempty"`
	EndsWith   string `yaml:"ends_with,omitempty"`
}

// UnzipTarget maps one member of a downloaded archive to the directory it is
// extracted into.
type UnzipTarget struct {
	Member string `yaml:"member"`
	Into   string `yaml:"into"`
}

// Symlink is created after extraction, pointing Link at Target.
type Symlink struct {
	Target string `yaml:"target"`
	Link   string `yaml:"link"`
}

type PostExtraction struct {
	SetExec  []string  `yaml:"set_exec,omitempty"`
	Symlinks []Symlink `yaml:"symlinks,omitempty"`
}

// Application is one declared artifact. It is immutable for the run; the
// last-known update metadata lives in the state store, not here.
type Application struct {
	ID               string          `yaml:"-"`
	Name             string          `yaml:"name"`
	Type             AppType         `yaml:"type"`
	URL              string          `yaml:"url"`
	Destination      string          `yaml:"destination,omitempty"`
	Frequency        Frequency       `yaml:"frequency,omitempty"`
	CheckoutRevision string          `yaml:"checkout_revision,omitempty"`
	GithubAssetData  *AssetMatch     `yaml:"github_api_asset_data,omitempty"`
	UnzipProg        string          `yaml:"unzip_prog,omitempty"`
	UnzipArgs        string          `yaml:"unzip_args,omitempty"`
	UnzipTargets     []UnzipTarget   `yaml:"unzip_targets,omitempty"`
	PostExtraction   *PostExtraction `yaml:"post_extraction_actions,omitempty"`
}

// EffectiveFrequency applies the weekly default.
func (a *Application) EffectiveFrequency() Frequency {
	if a.Frequency == "" {
		return Weekly
	}
	return a.Frequency
}

// UpdateRecord is the persisted per-application metadata proving what was
// last fetched. All fields optional.
type UpdateRecord struct {
	UpdateDate string `json:"update_date,omitempty"`
	Hash       string `json:"hash,omitempty"`
	TagName    string `json:"tag_name,omitempty"`
}
