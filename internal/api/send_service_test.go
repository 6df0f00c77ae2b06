package api

import (
	"context"
	"testing"

	"github.com/ricardofn/wagate/internal/bridge"
	"github.com/ricardofn/wagate/internal/fault"
)

// fakeBridge records calls so tests can assert nothing reached the bridge on
// validation failures.
type fakeBridge struct {
	calls  int
	result *bridge.Result
	err    error
}

func (f *fakeBridge) touch() (*bridge.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeBridge) SendMessage(context.Context, string, string) (*bridge.Result, error) {
	return f.touch()
}
func (f *fakeBridge) SendFile(context.Context, string, string) (*bridge.Result, error) {
	return f.touch()
}
func (f *fakeBridge) SendAudio(context.Context, string, string) (*bridge.Result, error) {
	return f.touch()
}
func (f *fakeBridge) DownloadMedia(context.Context, string, string) (*bridge.Result, error) {
	return f.touch()
}

func TestSendValidationNeverReachesBridge(t *testing.T) {
	cases := []struct {
		name string
		call func(svc *SendService) error
	}{
		{"empty recipient", func(svc *SendService) error {
			_, err := svc.SendMessage(context.Background(), "", "hi")
			return err
		}},
		{"empty message", func(svc *SendService) error {
			_, err := svc.SendMessage(context.Background(), "551@s.whatsapp.net", "")
			return err
		}},
		{"file without path", func(svc *SendService) error {
			_, err := svc.SendFile(context.Background(), "551@s.whatsapp.net", "")
			return err
		}},
		{"audio without recipient", func(svc *SendService) error {
			_, err := svc.SendAudio(context.Background(), "", "/tmp/a.ogg")
			return err
		}},
		{"download without message id", func(svc *SendService) error {
			_, err := svc.DownloadMedia(context.Background(), "", "551@s.whatsapp.net")
			return err
		}},
		{"download without chat jid", func(svc *SendService) error {
			_, err := svc.DownloadMedia(context.Background(), "MSG1", "")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeBridge{}
			svc := NewSendService(fake, testLogger())
			err := tc.call(svc)
			if !fault.Is(err, fault.Validation) {
				t.Errorf("err = %v, want Validation", err)
			}
			if fake.calls != 0 {
				t.Errorf("bridge called %d times, want 0", fake.calls)
			}
		})
	}
}

func TestSendMessagePassesResultThrough(t *testing.T) {
	fake := &fakeBridge{result: &bridge.Result{Success: true, Message: "sent"}}
	svc := NewSendService(fake, testLogger())

	res, err := svc.SendMessage(context.Background(), "551@s.whatsapp.net", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Message != "sent" {
		t.Errorf("result = %+v", res)
	}
	if fake.calls != 1 {
		t.Errorf("bridge called %d times, want 1", fake.calls)
	}
}

func TestSendPropagatesBridgeFaults(t *testing.T) {
	fake := &fakeBridge{err: fault.Rejected(500, "boom")}
	svc := NewSendService(fake, testLogger())

	_, err := svc.SendFile(context.Background(), "551@s.whatsapp.net", "/tmp/doc.pdf")
	if !fault.Is(err, fault.BridgeRejected) {
		t.Fatalf("err = %v, want BridgeRejected", err)
	}
}
