package compare

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // indent with two spaces
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil || compSet.BaseResult == nil {
		return "", errors.New("no comparison to format")
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison %s: %w", compSet.BaseName, err)
	}
	return string(data), nil
}

// RankAlternatives returns a copy of compSet whose alternatives are ordered
// by the named payment, largest first. An empty key keeps the input order.
// Equal payments keep their input order.
func RankAlternatives(compSet *ComparisonSet, by string) (*ComparisonSet, error) {
	var pick func(ComparisonResult) decimal.Decimal
	switch by {
	case "":
		return compSet, nil
	case "lump_sum":
		pick = func(r ComparisonResult) decimal.Decimal { return r.Result.LumpSum }
	case "monthly":
		pick = func(r ComparisonResult) decimal.Decimal { return r.Result.Monthly }
	case "total":
		pick = func(r ComparisonResult) decimal.Decimal { return r.Result.TotalBenefit }
	default:
		return nil, fmt.Errorf("unknown rank %q (use lump_sum, monthly or total)", by)
	}

	ranked := *compSet
	ranked.AlternativeResults = append([]ComparisonResult(nil), compSet.AlternativeResults...)
	sort.SliceStable(ranked.AlternativeResults, func(i, j int) bool {
		return pick(ranked.AlternativeResults[i]).GreaterThan(pick(ranked.AlternativeResults[j]))
	})
	return &ranked, nil
}
