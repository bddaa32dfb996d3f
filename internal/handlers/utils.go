package handlers

import (
	"fmt"
	"strings"

	"cert-inventory/internal/models"
	"cert-inventory/internal/presentation"
)

const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

// parseSortParams reads the sort and order query values. Defaults are days ascending.
func parseSortParams(sortParam, orderParam string) (presentation.Column, string, error) {
	col, err := presentation.ParseColumn(sortParam)
	if err != nil {
		return "", "", err
	}

	switch order := strings.ToLower(orderParam); order {
	case "", orderAsc:
		return col, orderAsc, nil
	case orderDesc:
		return col, orderDesc, nil
	default:
		return "", "", fmt.Errorf("unknown order %q", orderParam)
	}
}

func countTiers(rows []presentation.Row) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Tier {
		case models.StatusExpired:
			counts.Expired++
		case models.StatusExpiring:
			counts.Expiring++
		default:
			counts.Active++
		}
		if row.Tier.RequiresAction() {
			counts.AttentionRequired++
		}
	}
	return counts
}
