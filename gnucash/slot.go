package gnucash

// Slot is a typed key/value pair attached to accounts and other entities.
type Slot struct {
	Key   string    `xml:"key"`
	Value SlotValue `xml:"value"`
}

// SlotValue carries the slot payload together with its declared type.
type SlotValue struct {
	Type string `xml:"type,attr"`
	Data string `xml:",chardata"`
}

// Slots is the slot list of a single entity.
type Slots []Slot

// Get returns the slot with the given key.
func (s Slots) Get(key string) (Slot, bool) {
	for _, slot := range s {
		if slot.Key == key {
			return slot, true
		}
	}
	return Slot{}, false
}

// SetString sets a string-typed slot, replacing any existing value.
func (s *Slots) SetString(key, value string) {
	for i, slot := range *s {
		if slot.Key == key {
			(*s)[i].Value = SlotValue{Type: "string", Data: value}
			return
		}
	}
	*s = append(*s, Slot{Key: key, Value: SlotValue{Type: "string", Data: value}})
}

// Remove deletes the slot with the given key, if present.
func (s *Slots) Remove(key string) {
	for i, slot := range *s {
		if slot.Key == key {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return
		}
	}
}
