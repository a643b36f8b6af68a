package model

import "encoding/json"

// Informations is the fixed-key technical sheet stored in offers.informations
// as a JSON document.  All ten keys are always present on output: decoding
// into the struct defaults any key missing from the stored text, and
// marshalling emits every field.
type Informations struct {
    Din     int    `json:"din"`     // horsepower (DIN)
    Fuel    string `json:"fuel"`    // fuel type (essence, diesel, ...)
    Type    string `json:"type"`    // vehicle body type
    Brand   string `json:"brand"`   // manufacturer
    Color   string `json:"color"`   // exterior color
    Doors   int    `json:"doors"`   // door count
    Model   string `json:"model"`   // model name
    Sites   int    `json:"sites"`   // seat count
    Gearbox string `json:"gearbox"` // manuelle | automatique
    Fiscal  int    `json:"fiscal"`  // fiscal horsepower
}

// Offer represents a vehicle listing as stored in the `offers` table.
// Image names the per-offer gallery directory under the configured gallery
// root; the Gallery field is filled at read time from a directory scan and
// never persisted.
type Offer struct {
    ID             uint64       `json:"id"`              // offers.id
    Name           string       `json:"name"`            // offers.name
    Description    string       `json:"description"`     // offers.description
    Price          float64      `json:"price"`           // offers.price (decimal)
    ReleaseDate    string       `json:"release_date"`    // offers.release_date, truncated to YYYY-MM on output
    Mileage        int64        `json:"mileage"`         // offers.mileage
    Active         bool         `json:"active"`          // offers.active
    Informations   Informations `json:"informations"`    // offers.informations (JSON document)
    EquipmentsList []string     `json:"equipments_list"` // offers.equipments_list (JSON array)
    Image          string       `json:"-"`               // offers.image (gallery directory name)
    Gallery        []string     `json:"gallery"`         // public URLs of the gallery files
}

// DecodeInformations parses the stored JSON text into the fixed-key struct.
// Empty or invalid text yields the zero value, never an error: a listing
// with a broken sheet still renders with defaulted fields.
func DecodeInformations(raw []byte) Informations {
    var inf Informations
    if len(raw) > 0 {
        _ = json.Unmarshal(raw, &inf)
    }
    return inf
}

// DecodeEquipments parses the stored JSON array of free-form equipment
// strings.  Invalid text yields an empty (non-nil) slice so the JSON
// response always carries an array.
func DecodeEquipments(raw []byte) []string {
    out := []string{}
    if len(raw) > 0 {
        _ = json.Unmarshal(raw, &out)
    }
    if out == nil {
        out = []string{}
    }
    return out
}
