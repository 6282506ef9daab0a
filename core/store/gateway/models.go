package gateway

import "time"

// Collection is a catalog row for a container item.
type Collection struct {
	ID        uint   `gorm:"primaryKey"`
	Path      string `gorm:"uniqueIndex;size:768"`
	Parent    string `gorm:"index;size:768"`
	CreatedAt time.Time
}

// TableName overrides the GORM table name.
func (Collection) TableName() string {
	return "collections"
}

// Object is a catalog row for a data object.
type Object struct {
	ID        uint   `gorm:"primaryKey"`
	Path      string `gorm:"uniqueIndex;size:768"`
	Parent    string `gorm:"index;size:768"`
	CreatedAt time.Time
}

// TableName overrides the GORM table name.
func (Object) TableName() string {
	return "objects"
}

// Replica is a catalog row registering one physical copy of a data object
// on a storage resource.
type Replica struct {
	ID         uint   `gorm:"primaryKey"`
	ObjectPath string `gorm:"index;size:768"`
	Number     int
	Resource   string `gorm:"size:128"`
	Checksum   string `gorm:"size:64"`
	Valid      bool
	CreatedAt  time.Time
}

// TableName overrides the GORM table name.
func (Replica) TableName() string {
	return "replicas"
}

// Metadata is a catalog row for one AVU attached to an item.
type Metadata struct {
	ID       uint   `gorm:"primaryKey"`
	ItemPath string `gorm:"index;size:768"`
	Attr     string `gorm:"size:255"`
	Value    string `gorm:"size:1024"`
	Units    string `gorm:"size:255"`
}

// TableName overrides the GORM table name.
func (Metadata) TableName() string {
	return "metadata"
}

// AccessEntry is a catalog row for one access-list entry of an item.
type AccessEntry struct {
	ID       uint   `gorm:"primaryKey"`
	ItemPath string `gorm:"index;size:768"`
	UserName string `gorm:"size:255"`
	Level    string `gorm:"size:32"`
}

// TableName overrides the GORM table name.
func (AccessEntry) TableName() string {
	return "access_entries"
}
