package parse

// Predicate is a Parse query filter: equality constraints are plain
// key/value pairs, range constraints are nested operator objects.
//
//	{"serial": "DEV-42", "printed": false}
//	{"serial": "DEV-42", "createdAt": {"$gt": start, "$lt": end}}
type Predicate map[string]any

// Range constrains a field to an exclusive interval. The zero value of a
// bound omits that side of the interval.
type Range struct {
	Gt string `json:"$gt,omitempty"`
	Lt string `json:"$lt,omitempty"`
}

// UnprintedBySerial matches every unprinted record of the given device
// serial.
func UnprintedBySerial(serial string) Predicate {
	return Predicate{
		"serial":  serial,
		"printed": false,
	}
}

// BySerialBetween matches every record of the given device serial created
// strictly between the two bounds, printed or not.
func BySerialBetween(serial, start, end string) Predicate {
	return Predicate{
		"serial":    serial,
		"createdAt": Range{Gt: start, Lt: end},
	}
}
