package event

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// envelope carries the discriminator fields of a raw event line.
type envelope struct {
	Event  string `json:"event"`
	Status string `json:"status"`
}

// Decode parses a single newline-delimited JSON event into its tagged variant. Unknown
// event names and unknown runner statuses are errors; the stream contract is a closed set.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("event: malformed event line: err=%v", err)
	}

	switch env.Event {
	case "playbook_start":
		var e PlaybookStart
		if err := sonic.Unmarshal(data, &e); err != nil {
			return nil, decodeError(env.Event, err)
		}
		return e, nil

	case "play_start":
		var e PlayStart
		if err := sonic.Unmarshal(data, &e); err != nil {
			return nil, decodeError(env.Event, err)
		}
		return e, nil

	case "task_start", "handler_task_start":
		var e TaskStart
		if err := sonic.Unmarshal(data, &e); err != nil {
			return nil, decodeError(env.Event, err)
		}
		e.Handler = env.Event == "handler_task_start"
		return e, nil

	case "runner_result":
		var e HostOutcome
		if err := sonic.Unmarshal(data, &e); err != nil {
			return nil, decodeError(env.Event, err)
		}

		status, ok := ParseOutcome(env.Status)
		if !ok {
			return nil, fmt.Errorf("event: unknown runner status: status=%s", env.Status)
		}
		e.Status = status
		return e, nil

	case "stats":
		var e RunEnd
		if err := sonic.Unmarshal(data, &e); err != nil {
			return nil, decodeError(env.Event, err)
		}
		return e, nil

	default:
		return nil, fmt.Errorf("event: unknown event type: event=%s", env.Event)
	}
}

func decodeError(name string, err error) error {
	return fmt.Errorf("event: error decoding event payload: event=%s err=%v", name, err)
}
