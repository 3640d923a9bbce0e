package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringSlice stores a list of strings as a JSON text column. Serialization
// happens only at the persistence boundary; everywhere else the field is a
// plain []string.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for StringSlice")
	}
	if len(data) == 0 {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(data, s)
}

// Contains reports whether the slice holds the given value.
func (s StringSlice) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// Provider is a healthcare place known to the system: a Google place plus
// local annotations such as insurance acceptance and the cached rating.
type Provider struct {
	ID                uint        `gorm:"primaryKey" json:"id"`
	PlaceID           string      `gorm:"type:varchar(255);uniqueIndex" json:"place_id"`
	Name              string      `gorm:"type:varchar(255)" json:"name"`
	Address           string      `gorm:"type:varchar(512)" json:"address"`
	Latitude          float64     `gorm:"not null;index" json:"latitude"`
	Longitude         float64     `gorm:"not null;index" json:"longitude"`
	Phone             string      `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Website           string      `gorm:"type:varchar(512)" json:"website,omitempty"`
	Types             StringSlice `gorm:"type:text" json:"types"`
	Specialties       StringSlice `gorm:"type:text" json:"specialties"`
	InsuranceAccepted StringSlice `gorm:"type:text" json:"insurance_accepted"`
	Rating            float64     `json:"rating"`
	PriceLevel        int         `json:"price_level"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}
