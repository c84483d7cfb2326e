package models

// Uniquepair is a domain-tagged ordered pair of ids. A pair exists at most
// once per domain.
type Uniquepair struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	CreatedAt  int64  `gorm:"autoCreateTime;not null;column:created_at" json:"created_at"`
	Domain     string `gorm:"type:varchar(32);not null;uniqueIndex:uniquepair_domain_elems,priority:1;column:domain" json:"domain"`
	FirstElem  int64  `gorm:"not null;uniqueIndex:uniquepair_domain_elems,priority:2;column:first_elem" json:"first_elem"`
	SecondElem int64  `gorm:"not null;uniqueIndex:uniquepair_domain_elems,priority:3;column:second_elem" json:"second_elem"`
}

// TableName specifies the table name for Uniquepair
func (Uniquepair) TableName() string {
	return "uniquepairs"
}

// UniquepairQuery selects pairs of one domain, optionally narrowed by either
// element.
type UniquepairQuery struct {
	Domain     string `json:"domain"`
	FirstElem  *int64 `json:"first_elem,omitempty"`
	SecondElem *int64 `json:"second_elem,omitempty"`
}

// Ref returns a pointer to v, for building queries.
func Ref(v int64) *int64 {
	return &v
}
