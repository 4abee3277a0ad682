// Package analysis implements the client-side bookkeeping around analysis
// results: parameter normalization, the unchanged-form check that gates
// re-analysis, source-chat presence tracking, and date input normalization.
package analysis

import (
	"strings"

	"github.com/chattolabs/chatto/internal/api"
)

// FieldKey names one editable analysis parameter.
type FieldKey string

const (
	FieldRelation    FieldKey = "relation"
	FieldSituation   FieldKey = "situation"
	FieldAge         FieldKey = "age"
	FieldTeamType    FieldKey = "team_type"
	FieldProjectType FieldKey = "project_type"
	FieldDateFrom    FieldKey = "date_from"
	FieldDateTo      FieldKey = "date_to"
)

// Label returns the Korean form label for a field.
func Label(k FieldKey) string {
	switch k {
	case FieldRelation:
		return "관계"
	case FieldSituation:
		return "상황"
	case FieldAge:
		return "나이대"
	case FieldTeamType:
		return "팀 유형"
	case FieldProjectType:
		return "프로젝트 유형"
	case FieldDateFrom:
		return "분석 시작일"
	case FieldDateTo:
		return "분석 종료일"
	}
	return string(k)
}

// Fields returns the editable field set for an analysis kind. This is the
// single source of truth the form, the normalization, and the unchanged
// check all share.
func Fields(kind api.Kind) []FieldKey {
	switch kind {
	case api.KindChemi, api.KindSome:
		return []FieldKey{FieldRelation, FieldSituation, FieldAge, FieldDateFrom, FieldDateTo}
	case api.KindMBTI:
		return []FieldKey{FieldAge, FieldDateFrom, FieldDateTo}
	case api.KindContrib:
		return []FieldKey{FieldTeamType, FieldProjectType, FieldDateFrom, FieldDateTo}
	}
	return nil
}

// Get reads one field from a parameter set.
func Get(p api.Params, k FieldKey) string {
	switch k {
	case FieldRelation:
		return p.Relation
	case FieldSituation:
		return p.Situation
	case FieldAge:
		return p.Age
	case FieldTeamType:
		return p.TeamType
	case FieldProjectType:
		return p.ProjectType
	case FieldDateFrom:
		return p.DateFrom
	case FieldDateTo:
		return p.DateTo
	}
	return ""
}

// Set writes one field of a parameter set.
func Set(p *api.Params, k FieldKey, value string) {
	switch k {
	case FieldRelation:
		p.Relation = value
	case FieldSituation:
		p.Situation = value
	case FieldAge:
		p.Age = value
	case FieldTeamType:
		p.TeamType = value
	case FieldProjectType:
		p.ProjectType = value
	case FieldDateFrom:
		p.DateFrom = value
	case FieldDateTo:
		p.DateTo = value
	}
}

// Normalize maps blank editable fields to the "입력 안 함" sentinel, exactly
// as parameters were stored when the analysis was requested. Fields outside
// the kind's editable set are forced to the sentinel so stray values can
// never leak into a request.
func Normalize(kind api.Kind, p api.Params) api.Params {
	editable := make(map[FieldKey]bool)
	for _, k := range Fields(kind) {
		editable[k] = true
	}

	all := []FieldKey{
		FieldRelation, FieldSituation, FieldAge,
		FieldTeamType, FieldProjectType, FieldDateFrom, FieldDateTo,
	}
	out := p
	for _, k := range all {
		v := strings.TrimSpace(Get(p, k))
		if v == "" || !editable[k] {
			Set(&out, k, api.NotProvided)
		} else {
			Set(&out, k, v)
		}
	}
	return out
}

// Same reports whether the form equals the stored parameters field by field
// after normalization: the isSameNow check. When true, a re-analysis would
// reproduce the currently displayed result, so the action is pointless.
func Same(kind api.Kind, form, stored api.Params) bool {
	nf := Normalize(kind, form)
	ns := Normalize(kind, stored)
	for _, k := range Fields(kind) {
		if Get(nf, k) != Get(ns, k) {
			return false
		}
	}
	return true
}
