package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

type careerSearchCacheKeyInput struct {
	Query    string   `json:"q"`
	Industry string   `json:"industry"`
	Skills   []string `json:"skills"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func CareersSearchCacheKey(params CareerSearchParams) string {
	skills := make([]string, 0, len(params.Skills))
	for _, s := range params.Skills {
		s = normalizeSearchValue(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	sort.Strings(skills)

	in := careerSearchCacheKeyInput{
		Query:    normalizeSearchValue(params.Query),
		Industry: normalizeSearchValue(params.Industry),
		Skills:   skills,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "careers:search:" + hex.EncodeToString(sum[:])
}

func CareersSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	if strings.HasPrefix(searchKey, "careers:search:") {
		return "careers:lock:" + strings.TrimPrefix(searchKey, "careers:search:")
	}
	return "careers:lock:" + searchKey
}
