package model

// KeyPersonDependency grades how dependent the business is on one person.
type KeyPersonDependency string

const (
	KeyPersonNone   KeyPersonDependency = "none"
	KeyPersonMedium KeyPersonDependency = "medium"
	KeyPersonHigh   KeyPersonDependency = "high"
)

// QualitativeData drives the discount stack. It never influences the
// enterprise-value computation itself; a nil QualitativeData means no
// discounts are applied and the confidence score takes a penalty.
type QualitativeData struct {
	KeyPersonDependency KeyPersonDependency `json:"key_person_dependency,omitempty" yaml:"key_person_dependency,omitempty"`
	TopClientSharePct   float64             `json:"top_client_share_pct,omitempty" yaml:"top_client_share_pct,omitempty"`
	MinorityStake       bool                `json:"minority_stake,omitempty" yaml:"minority_stake,omitempty"`
	HasLitigation       bool                `json:"has_litigation,omitempty" yaml:"has_litigation,omitempty"`
	HasKeyContracts     bool                `json:"has_key_contracts,omitempty" yaml:"has_key_contracts,omitempty"`
}
