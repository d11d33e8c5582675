package callback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"playstatsd/internal/event"
	"playstatsd/internal/log"
	"playstatsd/internal/statsd"
)

// captureClient records every submitted line, optionally failing each send.
type captureClient struct {
	lines []statsd.Line
	err   error
}

func (c *captureClient) Send(line statsd.Line) error {
	c.lines = append(c.lines, line)
	return c.err
}

// testDispatcher creates a dispatcher with a deterministic clock. Advancing the returned
// time pointer advances the dispatcher's view of now.
func testDispatcher(client statsd.Client) (*Dispatcher, *time.Time) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	d := NewDispatcher(client, log.NewNopLogger())
	d.now = func() time.Time { return now }

	return d, &now
}

func TestDispatcher_EndToEnd(t *testing.T) {
	client := &captureClient{}
	d, now := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{
		Basedir:  ".plays",
		FileName: "deploy.yml",
		Plays:    []string{"web"},
	})
	d.OnPlayStart(event.PlayStart{Play: "web"})
	d.OnTaskStart(event.TaskStart{Name: "install pkg", UUID: "t1"})

	*now = now.Add(2500 * time.Millisecond)
	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID:  "t1",
		Host:      "node1",
		CheckMode: false,
		Status:    event.OK,
	}))

	require.Len(t, client.lines, 2)
	require.Equal(t, "ansible.counter._plays.deploy.web.install pkg.node1.ok:1|c", client.lines[0].Serialize(""))
	require.Equal(t, "ansible.gauge._plays.deploy.web.install pkg.node1.ok:2.5|g", client.lines[1].Serialize(""))
}

func TestDispatcher_RunEnd(t *testing.T) {
	client := &captureClient{}
	d, now := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})
	d.OnPlayStart(event.PlayStart{Play: "web"})
	d.OnTaskStart(event.TaskStart{Name: "install pkg", UUID: "t1"})

	*now = now.Add(time.Second)
	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID: "t1",
		Host:     "node1",
		Status:   event.OK,
	}))
	client.lines = nil

	*now = now.Add(9 * time.Second)
	require.NoError(t, d.OnRunEnd(event.RunEnd{
		Stats: event.OutcomeCounts{"ok": {"node1": 1}},
	}))

	require.Len(t, client.lines, 2)
	require.Equal(t, "ansible.counter.stats./plays.deploy.ok.node1:1|c", client.lines[0].Serialize(""))
	require.Equal(t, "ansible.gauge.stats./plays.deploy:10|g", client.lines[1].Serialize(""))
}

func TestDispatcher_MissingTaskStart(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})

	err := d.OnHostOutcome(event.HostOutcome{TaskUUID: "never-started", Host: "node1", Status: event.OK})

	var missing *MissingStartError
	require.ErrorAs(t, err, &missing)
	require.Empty(t, client.lines)
}

func TestDispatcher_RunEndWithoutPlaybookStart(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	err := d.OnRunEnd(event.RunEnd{Stats: event.OutcomeCounts{"ok": {"node1": 1}}})

	var missing *MissingStartError
	require.ErrorAs(t, err, &missing)
	require.Empty(t, client.lines)
}

func TestDispatcher_CheckModeSuppressesTransmission(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})
	d.OnTaskStart(event.TaskStart{Name: "install pkg", UUID: "t1"})

	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID:  "t1",
		Host:      "node1",
		CheckMode: true,
		Status:    event.OK,
	}))
	require.Empty(t, client.lines)

	// A later live result resumes transmission.
	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID:  "t1",
		Host:      "node2",
		CheckMode: false,
		Status:    event.OK,
	}))
	require.Len(t, client.lines, 2)
}

func TestDispatcher_CheckModeSeededTrue(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	// Check mode stays in effect at run end when no result ever cleared it.
	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})
	require.NoError(t, d.OnRunEnd(event.RunEnd{Stats: event.OutcomeCounts{"ok": {"node1": 1}}}))
	require.Empty(t, client.lines)
}

func TestDispatcher_HandlerTaskKeepsDisplayedName(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})
	d.OnPlayStart(event.PlayStart{Play: "web"})
	d.OnTaskStart(event.TaskStart{Name: "install pkg", UUID: "t1"})
	d.OnTaskStart(event.TaskStart{Name: "restart svc", UUID: "h1", Handler: true})

	// The handler's outcome is timed against its own start but named after the last
	// regular task.
	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID: "h1",
		Host:     "node1",
		Status:   event.OK,
	}))

	require.Len(t, client.lines, 2)
	require.Equal(t, "ansible.counter./plays.deploy.web.install pkg.node1.ok", client.lines[0].Name)
}

func TestDispatcher_TransportFailureSwallowed(t *testing.T) {
	client := &captureClient{err: &statsd.TransportError{Op: "dial"}}
	d, _ := testDispatcher(client)

	d.OnPlaybookStart(event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml"})
	d.OnTaskStart(event.TaskStart{Name: "install pkg", UUID: "t1"})

	// A failing send is reported, not propagated; both lines are still attempted.
	require.NoError(t, d.OnHostOutcome(event.HostOutcome{
		TaskUUID: "t1",
		Host:     "node1",
		Status:   event.Failed,
	}))
	require.Len(t, client.lines, 2)
}

func TestDispatcher_HandleEvent(t *testing.T) {
	client := &captureClient{}
	d, now := testDispatcher(client)

	events := []event.Event{
		event.PlaybookStart{Basedir: "/plays", FileName: "deploy.yml", Plays: []string{"web"}},
		event.PlayStart{Play: "web"},
		event.TaskStart{Name: "install pkg", UUID: "t1"},
		event.HostOutcome{TaskUUID: "t1", Host: "node1", Status: event.OK},
		event.RunEnd{Stats: event.OutcomeCounts{"ok": {"node1": 1}}},
	}

	for _, e := range events {
		*now = now.Add(time.Second)
		require.NoError(t, d.HandleEvent(e))
	}

	// Two lines for the host outcome, two for the stats leaf.
	require.Len(t, client.lines, 4)
}

func TestDispatcher_HandleEventUnknownType(t *testing.T) {
	client := &captureClient{}
	d, _ := testDispatcher(client)

	require.Error(t, d.HandleEvent(nil))
}
