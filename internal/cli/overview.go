package cli

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentCalls bounds the parallel tool calls of an overview.
const maxConcurrentCalls = 4

// ResourceCount is one line of an overview.
type ResourceCount struct {
	Resource string `json:"resource"`
	Total    int    `json:"total"`
	Error    string `json:"error"`
}

// Overview calls every list tool in parallel and reports how many entries
// each returned. A failing tool is reported in its own row and does not
// abort the others.
func (e *ToolExecutor) Overview(ctx context.Context, listTools []string) ([]ResourceCount, error) {
	rows := make([]ResourceCount, len(listTools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalls)
	for i, name := range listTools {
		rows[i].Resource = strings.TrimSuffix(name, "_list")
		g.Go(func() error {
			data, err := e.client.CallToolJSON(gctx, name, nil)
			if err != nil {
				rows[i].Error = err.Error()
				return nil
			}
			total, err := countEntries(data)
			if err != nil {
				rows[i].Error = err.Error()
				return nil
			}
			rows[i].Total = total
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// RenderOverview prints rows in the configured format.
func (e *ToolExecutor) RenderOverview(rows []ResourceCount) error {
	return e.Render(map[string]interface{}{
		"resources": rows,
	})
}

func countEntries(data interface{}) (int, error) {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected result shape")
	}
	if total, ok := obj["total"].(float64); ok {
		return int(total), nil
	}
	for _, v := range obj {
		if arr, ok := v.([]interface{}); ok {
			return len(arr), nil
		}
	}
	return 0, fmt.Errorf("result has no entries")
}
