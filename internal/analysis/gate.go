package analysis

// Gate decides whether the 재분석 (re-analyze) action is currently
// actionable and, when it isn't, why.
type Gate struct {
	Loading       bool
	HasSourceChat bool
	Unchanged     bool
}

// Allowed reports whether re-analysis may be requested.
func (g Gate) Allowed() bool {
	return !g.Loading && g.HasSourceChat && !g.Unchanged
}

// Reason returns the tooltip text for a disabled gate, or "" when the
// action is allowed. Checks are ordered by severity: loading first, then
// the missing source chat, then an unchanged form.
func (g Gate) Reason() string {
	switch {
	case g.Loading:
		return "불러오는 중입니다."
	case !g.HasSourceChat:
		return "원본 대화가 삭제되어 재분석할 수 없습니다."
	case g.Unchanged:
		return "변경된 내용이 없어 재분석할 필요가 없습니다."
	}
	return ""
}
