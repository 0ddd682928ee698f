package domain

// RecordKind distinguishes the two lexical record families.
type RecordKind string

const (
	RecordKindVocabulary RecordKind = "vocabulary"
	RecordKindExpression RecordKind = "expression"
)

func (k RecordKind) String() string { return string(k) }

func (k RecordKind) IsValid() bool {
	switch k {
	case RecordKindVocabulary, RecordKindExpression:
		return true
	}
	return false
}

// ResourceType is the URL segment used by the catalog API for this kind.
func (k RecordKind) ResourceType() string {
	if k == RecordKindExpression {
		return "expressions"
	}
	return "vocabulary"
}

// RecordKindFromResource maps an API resource segment back to a kind.
func RecordKindFromResource(resource string) (RecordKind, bool) {
	switch resource {
	case "vocabulary":
		return RecordKindVocabulary, true
	case "expressions":
		return RecordKindExpression, true
	}
	return "", false
}

// Level is the learner proficiency a record targets.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// BoardType is the catalog a board belongs to.
type BoardType string

const (
	BoardTypeVocabulary BoardType = "vocabulary"
	BoardTypeGrammar    BoardType = "grammar"
	BoardTypeIdioms     BoardType = "idioms"
)

func (t BoardType) String() string { return string(t) }

func (t BoardType) IsValid() bool {
	switch t {
	case BoardTypeVocabulary, BoardTypeGrammar, BoardTypeIdioms:
		return true
	}
	return false
}

// UserRole represents the authorization level of a caller.
type UserRole string

const (
	UserRoleViewer UserRole = "viewer"
	UserRoleEditor UserRole = "editor"
	UserRoleAdmin  UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleViewer, UserRoleEditor, UserRoleAdmin:
		return true
	}
	return false
}

// CanEdit reports whether the role may mutate catalog content.
func (r UserRole) CanEdit() bool {
	return r == UserRoleEditor || r == UserRoleAdmin
}
