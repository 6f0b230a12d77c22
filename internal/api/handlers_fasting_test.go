package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/terraincognita07/fitlog/internal/services"
)

func TestFastingStartRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 5, 21, 0, 0, 0, time.UTC))
	_, cookie := env.signIn(t, "faster@example.com")

	response := env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "20:00"})
	assertStatus(t, response, http.StatusOK)
	state := services.FastingState{}
	decodeJSON(t, response, &state)
	if !state.Stored {
		t.Fatal("expected stored start")
	}
	if state.Window.EatingEnd != "04:00" || state.Window.FastingEnd != "20:00" {
		t.Fatalf("unexpected window %+v", state.Window)
	}

	state = services.FastingState{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/fasting", cookie, nil), &state)
	if state.Countdown == nil || state.Countdown.Phase != services.CountdownPhaseEating {
		t.Fatalf("expected eating countdown, got %+v", state.Countdown)
	}
	if state.Countdown.Remaining != "07:00:00" {
		t.Fatalf("expected 07:00:00 remaining, got %q", state.Countdown.Remaining)
	}
}

func TestFastingClearAndInvalidStart(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "faster@example.com")

	response := env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "25:61"})
	assertStatus(t, response, http.StatusBadRequest)
	response.Body.Close()

	response = env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "08:00"})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	response = env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": ""})
	assertStatus(t, response, http.StatusOK)
	state := services.FastingState{}
	decodeJSON(t, response, &state)
	if state.Stored || state.Countdown != nil {
		t.Fatalf("expected cleared start without countdown, got %+v", state)
	}
}

func TestFastingCountdownFrameIsLocalized(t *testing.T) {
	env := newTestEnv(t)
	env.fixClock(time.Date(2024, 3, 5, 6, 0, 0, 0, time.UTC))
	_, cookie := env.signIn(t, "faster@example.com")

	response := env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "12:00"})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	frame := countdownFrame{}
	decodeJSON(t, env.request(t, http.MethodGet, "/api/fasting/countdown", cookie, nil), &frame)
	if !frame.Active || frame.Countdown == nil {
		t.Fatalf("expected active frame, got %+v", frame)
	}
	if frame.Countdown.Phase != services.CountdownPhaseFasting || frame.Countdown.Remaining != "06:00:00" {
		t.Fatalf("unexpected countdown %+v", frame.Countdown)
	}
	if frame.Label != "ניתן לחזור לאכול בעוד:" {
		t.Fatalf("unexpected label %q", frame.Label)
	}
}

func TestFastingCountdownStreamWithoutStartSendsSingleFrame(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "faster@example.com")

	response := env.request(t, http.MethodGet, "/api/fasting/countdown/stream", cookie, nil)
	assertStatus(t, response, http.StatusOK)
	defer response.Body.Close()

	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/event-stream") {
		t.Fatalf("expected event stream content type, got %q", contentType)
	}
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if strings.Count(string(body), "event: countdown") != 1 {
		t.Fatalf("expected exactly one frame, got %q", body)
	}
	if !strings.Contains(string(body), `"active":false`) {
		t.Fatalf("expected inactive frame, got %q", body)
	}
}

func TestWriteCountdownEventFormat(t *testing.T) {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)

	frame := countdownFrame{
		Active:    true,
		Label:     "label",
		Countdown: &services.FastingCountdown{Phase: services.CountdownPhaseEating, Remaining: "01:02:03", Seconds: 3723},
	}
	if err := writeCountdownEvent(writer, frame); err != nil {
		t.Fatalf("writeCountdownEvent() unexpected error: %v", err)
	}

	output := buffer.String()
	if !strings.HasPrefix(output, "event: countdown\ndata: ") || !strings.HasSuffix(output, "\n\n") {
		t.Fatalf("unexpected event framing %q", output)
	}
	payload := strings.TrimSuffix(strings.TrimPrefix(output, "event: countdown\ndata: "), "\n\n")
	decoded := countdownFrame{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Countdown == nil || decoded.Countdown.Seconds != 3723 {
		t.Fatalf("unexpected decoded frame %+v", decoded)
	}
}

func TestFastingCountdownStreamTicksUntilClientLeaves(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.signIn(t, "streamer@example.com")

	response := env.request(t, http.MethodPut, "/api/fasting", cookie, map[string]string{"start_time": "08:00"})
	assertStatus(t, response, http.StatusOK)
	response.Body.Close()

	env.handler.log.SetLevel(logrus.DebugLevel)
	logs := logtest.NewLocal(env.handler.log)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() {
		_ = env.app.Listener(listener)
	}()
	t.Cleanup(func() {
		_ = env.app.ShutdownWithTimeout(5 * time.Second)
	})

	request, err := http.NewRequest(http.MethodGet, "http://"+listener.Addr().String()+"/api/fasting/countdown/stream", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	request.Header.Set("Cookie", cookie)
	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	stream, err := client.Do(request)
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	assertStatus(t, stream, http.StatusOK)

	type timedFrame struct {
		at    time.Time
		frame countdownFrame
	}
	frames := make([]timedFrame, 0, 2)
	reader := bufio.NewReader(stream.Body)
	for len(frames) < 2 {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read stream after %d frames: %v", len(frames), err)
		}
		payload, ok := strings.CutPrefix(strings.TrimRight(line, "\n"), "data: ")
		if !ok {
			continue
		}
		frame := countdownFrame{}
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			t.Fatalf("decode frame %q: %v", payload, err)
		}
		frames = append(frames, timedFrame{at: time.Now(), frame: frame})
	}

	for _, received := range frames {
		if !received.frame.Active || received.frame.Countdown == nil {
			t.Fatalf("expected active frames, got %+v", received.frame)
		}
	}
	if gap := frames[1].at.Sub(frames[0].at); gap < 700*time.Millisecond || gap > 2*time.Second {
		t.Fatalf("expected frames about one second apart, got %s", gap)
	}
	if frames[1].frame.Countdown.Seconds >= frames[0].frame.Countdown.Seconds {
		t.Fatalf("expected countdown to decrease, got %d then %d", frames[0].frame.Countdown.Seconds, frames[1].frame.Countdown.Seconds)
	}

	stream.Body.Close()
	client.CloseIdleConnections()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, entry := range logs.AllEntries() {
			if entry.Message == "countdown stream closed" {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("expected the stream to stop after the client disconnected")
}
