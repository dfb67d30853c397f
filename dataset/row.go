// Package dataset defines the flattened output records and writes them to
// columnar files.
package dataset

import (
	"strconv"

	"github.com/karasuda/resasdl/resas"
)

// CityRow is one output record: a municipality joined with its parent
// prefecture. Column names follow the published dataset layout; all five
// columns are text.
type CityRow struct {
	PrefectureCode   string `parquet:"prefecture_code"`
	PrefectureName   string `parquet:"prefecture_name"`
	CityCode         string `parquet:"city_code"`
	CityName         string `parquet:"city_name"`
	BigCityFlagArray string `parquet:"big_city_flag_array"`
}

// NewCityRow flattens a city and the prefecture it belongs to into one row.
// The prefecture code comes from the city record itself; the parent
// contributes its name.
func NewCityRow(pref resas.Prefecture, city resas.City) CityRow {
	return CityRow{
		PrefectureCode:   strconv.Itoa(city.PrefCode),
		PrefectureName:   pref.PrefName,
		CityCode:         city.CityCode,
		CityName:         city.CityName,
		BigCityFlagArray: city.BigCityFlag,
	}
}
