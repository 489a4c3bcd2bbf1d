package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream a conversation's game events",
		Long: `Connect to the conversation's WebSocket endpoint and stream events in real-time.

Events include:
  - round_started: A new board was dealt
  - tiles_linked: Pairs were removed
  - board_shuffled: The remaining tiles were reshuffled
  - round_cleared: The board was cleared
  - round_ended: The round was ended early
  - round_timed_out: A timed round ran out of time

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// StreamEvent is the envelope every event arrives in
type StreamEvent struct {
	Type           string          `json:"type"`
	Timestamp      time.Time       `json:"timestamp"`
	ConversationID string          `json:"conversation_id"`
	RoundID        uint64          `json:"round_id"`
	Payload        json.RawMessage `json:"payload,omitempty"`
}

func streamEvents(ctx context.Context, w io.Writer, id string, jsonOutput bool) error {
	url := client.WebSocketURL(fmt.Sprintf("/api/v1/conversations/%s/events", id))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Unblock ReadMessage on cancellation
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	if !jsonOutput {
		fmt.Fprintf(w, "Connected to conversation %s\n", id)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				if !jsonOutput {
					fmt.Fprintln(w, "Disconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		if err := printEvent(w, data, jsonOutput); err != nil {
			return err
		}
	}
}

func printEvent(w io.Writer, data []byte, jsonOutput bool) error {
	if jsonOutput {
		fmt.Fprintln(w, string(data))
		return nil
	}

	var evt StreamEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return errors.Join(errors.New("malformed event"), err)
	}

	timestamp := evt.Timestamp.Local().Format("2006-01-02 15:04:05")
	payload := string(evt.Payload)
	// Truncate payload if it's too long for display
	if len(payload) > 100 {
		payload = payload[:100] + "..."
	}
	fmt.Fprintf(w, "[%s] round %d %s: %s\n", timestamp, evt.RoundID, evt.Type, payload)
	return nil
}
