package model

// Module is a catalogue learning module for one subject and tier.
type Module struct {
	Subject       Subject `json:"subject" yaml:"subject"`
	Tier          Tier    `json:"tier" yaml:"tier"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	EstimatedTime string  `json:"estimated_time" yaml:"estimated_time"`
}

// Challenge is an enrichment project offered to high-performing students.
type Challenge struct {
	Subject       Subject `json:"subject" yaml:"subject"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	EstimatedTime string  `json:"estimated_time" yaml:"estimated_time"`
}
