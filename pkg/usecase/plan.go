package usecase

import (
	"path"
	"strings"

	"github.com/m-mizutani/iaget/pkg/domain/model"
	"github.com/m-mizutani/iaget/pkg/utils/urlpath"
)

// BuildPlan converts download URLs into transfer entries, one per URL in
// input order. The output file name is the percent-decoded final path
// segment of the URL, since remote names were encoded during URL
// construction. Duplicates are kept here; the transfer engine resolves
// output path collisions (last entry wins).
func BuildPlan(urls []string, destination string) model.Plan {
	plan := make(model.Plan, 0, len(urls))
	for _, url := range urls {
		name := urlpath.Decode(path.Base(strings.TrimRight(url, "/")))
		plan = append(plan, model.PlanEntry{
			URL:        url,
			OutputPath: strings.TrimRight(destination, "/") + "/" + name,
		})
	}
	return plan
}
