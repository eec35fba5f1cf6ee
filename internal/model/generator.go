package model

import "errors"

// Generator is one row of the resource table (dfGen).
// Units:
// - Efficiencies: 0..1
// - SelfDischarge: fraction of stored energy lost per hour, 0..1
// - Capacities: MWh
type Generator struct {
	Resource string
	Zone     int

	// Storage marks a storage-capable resource; LongDuration additionally
	// enrolls it in inter-period inventory accounting.
	Storage      bool
	LongDuration bool

	SelfDischarge       float64
	ChargeEfficiency    float64
	DischargeEfficiency float64

	ExistingCapEnergyMWh float64
	// MaxCapEnergyMWh < 0 means no build limit.
	MaxCapEnergyMWh float64
}

func (g Generator) Validate() error {
	if g.Resource == "" {
		return errors.New("Resource must be non-empty")
	}
	if g.Zone < 1 {
		return errors.New("Zone must be >= 1")
	}
	if g.LongDuration && !g.Storage {
		return errors.New("LongDuration requires Storage")
	}
	if !g.Storage {
		return nil
	}
	if g.SelfDischarge < 0 || g.SelfDischarge >= 1 {
		return errors.New("SelfDischarge must be in [0, 1)")
	}
	if g.ChargeEfficiency <= 0 || g.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if g.DischargeEfficiency <= 0 || g.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if g.ExistingCapEnergyMWh < 0 {
		return errors.New("ExistingCapEnergyMWh must be >= 0")
	}
	if g.MaxCapEnergyMWh >= 0 && g.MaxCapEnergyMWh < g.ExistingCapEnergyMWh {
		return errors.New("MaxCapEnergyMWh must be >= ExistingCapEnergyMWh (or negative for unlimited)")
	}
	return nil
}
