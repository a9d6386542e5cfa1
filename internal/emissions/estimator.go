package emissions

// BusMode selects how a scenario substitutes buses for cars.
type BusMode string

const (
	// BusModeNone never substitutes: the whole group travels by a
	// car / light-truck mix.
	BusModeNone BusMode = "no"
	// BusModeSize switches to a bus when the raw group size exceeds
	// the bus occupancy threshold.
	BusModeSize BusMode = "bus"
	// BusModeGroup switches to a bus when the group type code belongs
	// to the configured organized-group set, regardless of size.
	BusModeGroup BusMode = "group"
)

// Parameters holds the emission factor table (mass CO2e per vehicle
// mile) and the vehicle occupancy table a scenario computes against.
type Parameters struct {
	CarFactor   float64 `yaml:"car_factor"`
	TruckFactor float64 `yaml:"truck_factor"`
	BusFactor   float64 `yaml:"bus_factor"`

	CarOccupancy   float64 `yaml:"car_occupancy"`
	BusOccupancy   float64 `yaml:"bus_occupancy"`
	GroupOccupancy float64 `yaml:"group_occupancy"`

	// Group type codes treated as organized groups under BusModeGroup
	GroupTypes []string `yaml:"group_types"`
}

// DefaultParameters returns the calibrated factor and occupancy tables.
func DefaultParameters() Parameters {
	return Parameters{
		CarFactor:      0.000337609,
		TruckFactor:    0.00046428,
		BusFactor:      0.0027,
		CarOccupancy:   2.5,
		BusOccupancy:   20,
		GroupOccupancy: 50,
		GroupTypes:     []string{"mtnclass", "yop-ds", "yop-it"},
	}
}

// Scenario is one named emissions-model configuration. Stateless;
// supplied by the caller and evaluated independently per itinerary.
type Scenario struct {
	Name       string     `yaml:"name"`
	Ratio      float64    `yaml:"ratio"` // fraction of trips on light trucks
	Bus        BusMode    `yaml:"bus"`
	Parameters Parameters `yaml:"parameters"`
}

// DefaultScenarios mirrors the standard report columns: 30% and 50%
// light-truck mixes, size-triggered bus substitution, and organized
// group travel.
func DefaultScenarios() []Scenario {
	p := DefaultParameters()
	return []Scenario{
		{Name: "ghg30", Ratio: 0.3, Bus: BusModeNone, Parameters: p},
		{Name: "ghg50", Ratio: 0.5, Bus: BusModeNone, Parameters: p},
		{Name: "bus", Ratio: 0.3, Bus: BusModeSize, Parameters: p},
		{Name: "grp", Ratio: 0.3, Bus: BusModeGroup, Parameters: p},
	}
}

func (p Parameters) isOrganizedGroup(groupType string) bool {
	for _, g := range p.GroupTypes {
		if g == groupType {
			return true
		}
	}
	return false
}

// Estimate computes the emission quantity for one itinerary under one
// scenario:
//
//	vehicles * factor * (inDriving + outDriving)
//
// where factor is the convex car/truck combination weighted by the
// scenario ratio, unless bus substitution activates and replaces both
// the vehicle count and the factor.
func Estimate(groupSize int, inDriving, outDriving float64, groupType string, sc Scenario) float64 {
	p := sc.Parameters
	factor := (1-sc.Ratio)*p.CarFactor + sc.Ratio*p.TruckFactor
	vehicles := float64(groupSize) / p.CarOccupancy

	switch sc.Bus {
	case BusModeSize:
		if float64(groupSize) > p.BusOccupancy {
			vehicles = float64(groupSize) / p.BusOccupancy
			factor = p.BusFactor
		}
	case BusModeGroup:
		if p.isOrganizedGroup(groupType) {
			vehicles = float64(groupSize) / p.GroupOccupancy
			factor = p.BusFactor
		}
	}

	return vehicles * factor * (inDriving + outDriving)
}
