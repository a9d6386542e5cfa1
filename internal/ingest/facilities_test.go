package ingest

import (
	"testing"
)

const facilityHeader = "building_code,building_name,lat,lon," +
	"nearest_airport,geo_dst_near_airport,drv_dst_near_airport,drv_time_near_airport," +
	"international_airport,geo_dst_intl_airport,drv_dst_intl_airport,drv_time_intl_airport\n"

func TestLoadFacilities(t *testing.T) {
	path := writeBatch(t, facilityHeader+
		"JOE,Joe Dodge Lodge,44.2570,-71.2527,PWM,62.0,85.0,1.7,BOS,131.0,155.0,2.9\n"+
		"MAD,Madison Spring Hut,44.3276,-71.2832,PWM,,,,BOS,,,\n")

	facilities, err := LoadFacilities(path)
	if err != nil {
		t.Fatalf("failed to load facilities: %v", err)
	}
	if len(facilities) != 2 {
		t.Fatalf("expected 2 facilities, got %d", len(facilities))
	}

	joe := facilities[0]
	if joe.BuildingCode != "JOE" || joe.Lat != 44.2570 || joe.DrvDistNearAirport != 85.0 {
		t.Errorf("unexpected facility: %+v", joe)
	}

	// Blank airport distances default to zero rather than failing
	if facilities[1].DrvDistNearAirport != 0 {
		t.Errorf("expected zero for blank distance, got %v", facilities[1].DrvDistNearAirport)
	}
}

func TestLoadFacilitiesBadCoordinates(t *testing.T) {
	path := writeBatch(t, facilityHeader+
		"JOE,Joe Dodge Lodge,north,-71.2527,PWM,62.0,85.0,1.7,BOS,131.0,155.0,2.9\n")
	if _, err := LoadFacilities(path); err == nil {
		t.Error("expected error for unparsable latitude")
	}
}
