package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for StringList")
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, (*[]string)(l))
}

// Community is a senior-living community in the public catalog.
// swagger:model Community
type Community struct {
	BaseModel
	Slug        string     `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	City        string     `gorm:"size:120" json:"city"`
	State       string     `gorm:"size:60" json:"state"`
	CareTypes   StringList `gorm:"type:json" json:"careTypes"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string     `gorm:"size:512" json:"imageUrl,omitempty"`
	Phone       string     `gorm:"size:40" json:"phone,omitempty"`
	Featured    bool       `gorm:"default:false;index" json:"featured"`
	Active      bool       `gorm:"default:true;index" json:"active"`
	SortOrder   int        `gorm:"default:0" json:"sortOrder"`
}

func (Community) TableName() string {
	return "communities"
}

// CareType maps a URL slug such as "memory-care" to its display name.
type CareType struct {
	BaseModel
	Slug        string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (CareType) TableName() string {
	return "care_types"
}
