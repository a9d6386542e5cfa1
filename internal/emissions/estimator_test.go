package emissions

import (
	"math"
	"testing"
)

const eps = 1e-12

func scenario(name string, ratio float64, bus BusMode) Scenario {
	return Scenario{Name: name, Ratio: ratio, Bus: bus, Parameters: DefaultParameters()}
}

func TestEstimateCarTruckMix(t *testing.T) {
	p := DefaultParameters()
	sc := scenario("ghg30", 0.3, BusModeNone)

	// 100 people, 50-mile legs each way
	got := Estimate(100, 50, 50, "", sc)

	factor := 0.7*p.CarFactor + 0.3*p.TruckFactor
	want := (100 / p.CarOccupancy) * factor * 100
	if math.Abs(got-want) > eps {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestEstimateRatioShiftsFactor(t *testing.T) {
	ghg30 := Estimate(10, 100, 100, "", scenario("ghg30", 0.3, BusModeNone))
	ghg50 := Estimate(10, 100, 100, "", scenario("ghg50", 0.5, BusModeNone))
	if ghg50 <= ghg30 {
		t.Errorf("heavier truck mix should emit more: ghg30=%v ghg50=%v", ghg30, ghg50)
	}
}

func TestEstimateBusBySize(t *testing.T) {
	p := DefaultParameters()
	sc := scenario("bus", 0.3, BusModeSize)

	// At the occupancy threshold the group still travels by car
	atThreshold := Estimate(20, 100, 0, "", sc)
	carFactor := 0.7*p.CarFactor + 0.3*p.TruckFactor
	wantCar := (20 / p.CarOccupancy) * carFactor * 100
	if math.Abs(atThreshold-wantCar) > eps {
		t.Errorf("group of 20 should stay on cars: expected %v, got %v", wantCar, atThreshold)
	}

	// One more person tips the group onto a bus
	overThreshold := Estimate(21, 100, 0, "", sc)
	wantBus := (21 / p.BusOccupancy) * p.BusFactor * 100
	if math.Abs(overThreshold-wantBus) > eps {
		t.Errorf("group of 21 should ride a bus: expected %v, got %v", wantBus, overThreshold)
	}
}

func TestEstimateBusByGroupType(t *testing.T) {
	p := DefaultParameters()
	sc := scenario("grp", 0.3, BusModeGroup)

	// Organized groups ride buses regardless of size
	organized := Estimate(5, 200, 200, "mtnclass", sc)
	wantBus := (5 / p.GroupOccupancy) * p.BusFactor * 400
	if math.Abs(organized-wantBus) > eps {
		t.Errorf("organized group should ride a bus: expected %v, got %v", wantBus, organized)
	}

	// Unlisted group types fall back to the car mix
	individual := Estimate(5, 200, 200, "family", sc)
	carFactor := 0.7*p.CarFactor + 0.3*p.TruckFactor
	wantCar := (5 / p.CarOccupancy) * carFactor * 400
	if math.Abs(individual-wantCar) > eps {
		t.Errorf("unlisted group type should stay on cars: expected %v, got %v", wantCar, individual)
	}
}

func TestEstimateZeroDistance(t *testing.T) {
	if got := Estimate(10, 0, 0, "", scenario("ghg30", 0.3, BusModeNone)); got != 0 {
		t.Errorf("zero travel should emit zero, got %v", got)
	}
}

func TestDefaultScenarios(t *testing.T) {
	scs := DefaultScenarios()
	if len(scs) != 4 {
		t.Fatalf("expected 4 default scenarios, got %d", len(scs))
	}
	names := map[string]BusMode{}
	for _, sc := range scs {
		names[sc.Name] = sc.Bus
	}
	if names["ghg30"] != BusModeNone || names["ghg50"] != BusModeNone {
		t.Error("ghg scenarios should not substitute buses")
	}
	if names["bus"] != BusModeSize {
		t.Error("bus scenario should substitute by size")
	}
	if names["grp"] != BusModeGroup {
		t.Error("grp scenario should substitute by group type")
	}
}
