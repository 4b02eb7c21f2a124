package server

import (
	"context"

	"github.com/nlui/studio/internal/observability"
	"github.com/nlui/studio/internal/render/plain"
)

// defaultActions acknowledges every inferred action and records it in the
// log. Embedders replace it through Options.Actions.
func defaultActions(log *observability.Logger) *plain.ActionTable {
	t := plain.NewActionTable()
	replies := map[plain.Action]string{
		plain.ActionSubmit:        "Submitted",
		plain.ActionApprove:       "Approved",
		plain.ActionDecline:       "Declined",
		plain.ActionOpen:          "Opened",
		plain.ActionClose:         "Closed",
		plain.ActionSaveDraft:     "Draft saved",
		plain.ActionGenericSubmit: "Done",
	}
	for a, reply := range replies {
		t.Handle(a, func(_ context.Context, c plain.Click) (string, error) {
			log.Info("action", "action", string(a), "node_id", c.NodeID, "text", c.Text)
			return reply, nil
		})
	}
	return t
}
