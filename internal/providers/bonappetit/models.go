// internal/providers/bonappetit/models.go
package bonappetit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// cafesResponse es la respuesta de GET /api/2/cafes?cafe=<id>.
type cafesResponse struct {
	Cafes map[string]cafe `json:"cafes"`
}

type cafe struct {
	Name string  `json:"name"`
	Days dayList `json:"days"`
}

type cafeDay struct {
	Date     string      `json:"date"`
	Status   string      `json:"status"`
	Dayparts daypartList `json:"dayparts"`
}

type daypart struct {
	StartTime string `json:"starttime"`
	EndTime   string `json:"endtime"`
	Label     string `json:"label"`
}

// dayList accepts days as an array or as an object keyed "0", "1", ...
type dayList []cafeDay

func (d *dayList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = nil
		return nil
	}

	var arr []cafeDay
	if err := json.Unmarshal(data, &arr); err == nil {
		*d = arr
		return nil
	}

	var obj map[string]cafeDay
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("days: cannot unmarshal %.40s", data)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return indexLess(keys[i], keys[j]) })

	out := make([]cafeDay, 0, len(keys))
	for _, k := range keys {
		out = append(out, obj[k])
	}
	*d = out
	return nil
}

// daypartList accepts dayparts as a flat list, a list of lists, or false
// (the API sends false on days without service).
type daypartList []daypart

func (l *daypartList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", "false", `""`:
		*l = nil
		return nil
	}

	var flat []daypart
	if err := json.Unmarshal(data, &flat); err == nil {
		*l = flat
		return nil
	}

	var nested [][]daypart
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("dayparts: cannot unmarshal %.40s", data)
	}

	var out []daypart
	for _, group := range nested {
		out = append(out, group...)
	}
	*l = out
	return nil
}

// indexLess ordena claves numéricas por valor y el resto lexicográficamente.
func indexLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
