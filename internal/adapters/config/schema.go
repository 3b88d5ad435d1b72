package config

// Document represents the structure of the lineage.yaml schema document.
type Document struct {
	Versions  []string      `yaml:"versions" validate:"required,min=1,dive,required"`
	Namespace *NamespaceDTO `yaml:"namespace" validate:"required"`
}

// NamespaceDTO is the root namespace of the document.
type NamespaceDTO struct {
	Name      string         `yaml:"name" validate:"required"`
	Lifecycle []LifecycleDTO `yaml:"lifecycle" validate:"dive"`
	Members   []*MemberDTO   `yaml:"members" validate:"dive,required"`
}

// MemberDTO is one declared element below the root.
type MemberDTO struct {
	Kind       string         `yaml:"kind" validate:"required,oneof=namespace model property enum member operation parameter response"`
	Name       string         `yaml:"name" validate:"required"`
	Key        string         `yaml:"key"`
	Lifecycle  []LifecycleDTO `yaml:"lifecycle" validate:"dive"`
	References []string       `yaml:"references" validate:"dive,required"`
	Members    []*MemberDTO   `yaml:"members" validate:"dive,required"`
}

// LifecycleDTO is one lifecycle entry. Exactly one of Added, Removed and
// Renamed is set; To is the new name of a rename.
type LifecycleDTO struct {
	Added   string `yaml:"added"`
	Removed string `yaml:"removed"`
	Renamed string `yaml:"renamed"`
	To      string `yaml:"to"`
}
