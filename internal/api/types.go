package api

import "time"

// Kind discriminates the four analysis products.
type Kind string

const (
	KindChemi   Kind = "chemi"
	KindSome    Kind = "some"
	KindMBTI    Kind = "mbti"
	KindContrib Kind = "contrib"
)

// Mode selects the play or business side of the backend API.
type Mode string

const (
	ModePlay     Mode = "play"
	ModeBusiness Mode = "business"
)

// ModeFor returns the API mode the kind is served under. Contribution
// analysis lives on the business side, everything else on play.
func ModeFor(kind Kind) Mode {
	if kind == KindContrib {
		return ModeBusiness
	}
	return ModePlay
}

// slug is the path segment the backend uses for the kind. Note "chem", not
// "chemi", on the wire.
func (k Kind) slug() string {
	if k == KindChemi {
		return "chem"
	}
	return string(k)
}

// Valid reports whether k is one of the four analysis kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindChemi, KindSome, KindMBTI, KindContrib:
		return true
	}
	return false
}

// Chat is one uploaded conversation export owned by the user.
type Chat struct {
	ID         string    `json:"chat_id"`
	Title      string    `json:"title"`
	PeopleNum  int       `json:"people_num"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// NotProvided is the sentinel the backend stores for analysis parameters the
// user left blank.
const NotProvided = "입력 안 함"

// Date-range sentinels accepted in place of a concrete YYYY-MM-DD value.
const (
	DateFromStart = "처음부터"
	DateUntilNow  = "지금까지"
)

// Params are the user-supplied inputs captured when an analysis was
// requested. Which fields are editable depends on the kind; unused fields
// stay at the NotProvided sentinel.
type Params struct {
	Relation    string `json:"relation"`
	Situation   string `json:"situation"`
	Age         string `json:"age"`
	TeamType    string `json:"team_type"`
	ProjectType string `json:"project_type"`
	DateFrom    string `json:"analysis_start"`
	DateTo      string `json:"analysis_end"`
}

// Analysis is one immutable computed report. Re-analyzing never mutates an
// existing record; the backend always mints a new id.
type Analysis struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat"`
	ChatTitle string    `json:"chat_title"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	Params

	// Backend-computed report payload. Free-form per kind; the client
	// renders whatever arrives without interpreting the schema.
	Spec         map[string]any   `json:"spec"`
	SpecPersonal []map[string]any `json:"spec_personal,omitempty"`
	SpecPeriod   []map[string]any `json:"spec_period,omitempty"`
	SpecTable    []map[string]any `json:"spec_table,omitempty"`
}

// AnalysisSummary is the list-endpoint projection of an Analysis.
type AnalysisSummary struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat"`
	ChatTitle string    `json:"chat_title"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the authenticated user's account record.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Credit   int    `json:"credit"`
	Point    int    `json:"point"`
}

// Question is one quiz entry. Options always has four entries; Answer is the
// 1-based index of the correct option.
type Question struct {
	ID      string    `json:"questionId"`
	Index   int       `json:"questionIndex"`
	Title   string    `json:"title"`
	Options [4]string `json:"options"`
	Answer  int       `json:"answer"`
}

// Participant is a guest quiz session keyed by display name.
type Participant struct {
	ID   string `json:"qpId"`
	Name string `json:"name"`
}

// ParticipantResult is one guest's scored outcome.
type ParticipantResult struct {
	ID      string `json:"qpId"`
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
	Correct []bool `json:"correct"`
}

// CreditEvent is one row of the usage or purchase history.
type CreditEvent struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
