package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"transfer-agent/domain"
	"transfer-agent/domain/event"
	"transfer-agent/mocks"
)

func TestEventFanout_EverySinkSeesEveryEvent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)

	delivered := make(chan event.DomainEvent, 2)
	first.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.DomainEvent) error {
			delivered <- e
			return nil
		}).Times(1)
	second.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e event.DomainEvent) error {
			delivered <- e
			return nil
		}).Times(1)

	events := make(chan event.DomainEvent, 4)
	fanout := NewEventFanout(testLogger(), events).Add(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fanout.Run(ctx) }()

	events <- event.FileStatusChanged{Path: "/src/a.mxf", NewStatus: domain.StatusReady, At: time.Now()}

	for i := 0; i < 2; i++ {
		select {
		case e := <-delivered:
			req.Equal("/src/a.mxf", e.(event.FileStatusChanged).Path)
		case <-time.After(time.Second):
			req.Fail("sink never received the event")
		}
	}
}

func TestEventFanout_FailingSinkDoesNotBlockOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)

	failing.EXPECT().Consume(gomock.Any(), gomock.Any()).
		Return(errors.New("sink unavailable")).Times(1)

	delivered := make(chan struct{}, 1)
	healthy.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, event.DomainEvent) error {
			delivered <- struct{}{}
			return nil
		}).Times(1)

	events := make(chan event.DomainEvent, 4)
	fanout := NewEventFanout(testLogger(), events).Add(failing, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fanout.Run(ctx) }()

	events <- event.FileStatusChanged{Path: "/src/a.mxf", NewStatus: domain.StatusReady, At: time.Now()}

	select {
	case <-delivered:
	case <-time.After(time.Second):
		req.Fail("healthy sink starved by a failing one")
	}
}

func TestEventFanout_ClosedChannelStopsTheWorker(t *testing.T) {
	req := require.New(t)

	events := make(chan event.DomainEvent)
	fanout := NewEventFanout(testLogger(), events)

	done := make(chan error, 1)
	go func() { done <- fanout.Run(context.Background()) }()

	close(events)

	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("fanout should stop when its source closes")
	}
}
