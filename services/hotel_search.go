package services

import (
	"sort"
	"strings"

	"hotelbooking/dto"
	"hotelbooking/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// bestWordSimilarity là độ tương đồng cao nhất giữa term và từng từ của text
func bestWordSimilarity(term, text string) float64 {
	best := 0.0
	for _, word := range strings.Fields(text) {
		if s := calculateSimilarity(term, word); s > best {
			best = s
		}
	}
	return best
}

// SearchHotels scores hotels against a free-text query and returns the
// matches, best first. Accents and case are ignored.
func SearchHotels(hotels []models.Hotel, query string) []dto.ScoredHotel {
	q := normalizeInput(query)
	if q == "" {
		out := make([]dto.ScoredHotel, 0, len(hotels))
		for _, h := range hotels {
			out = append(out, dto.ScoredHotel{Hotel: h})
		}
		return out
	}

	names := make([]string, 0, len(hotels))
	addresses := make([]string, 0, len(hotels))
	for _, h := range hotels {
		names = append(names, normalizeInput(h.Name))
		addresses = append(addresses, normalizeInput(h.Address))
	}
	nameMatch := createMatcher(names).Closest(q)
	addressMatch := createMatcher(addresses).Closest(q)

	terms := strings.Fields(q)
	var results []dto.ScoredHotel
	for i, h := range hotels {
		score := 0
		name, address := names[i], addresses[i]

		if strings.Contains(name, q) {
			score += 40
		} else if name == nameMatch {
			score += 15
		}
		if strings.Contains(address, q) {
			score += 30
		} else if address == addressMatch {
			score += 10
		}

		for _, term := range terms {
			if len(term) < 2 {
				continue
			}
			if sim := bestWordSimilarity(term, name); sim >= 0.75 {
				score += int(sim * 10)
			}
			if sim := bestWordSimilarity(term, address); sim >= 0.75 {
				score += int(sim * 8)
			}
			for _, a := range h.Amenities {
				if calculateSimilarity(term, normalizeInput(a)) >= 0.8 {
					score += 5
					break
				}
			}
		}

		if score > 0 {
			results = append(results, dto.ScoredHotel{Hotel: h, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
