package bedrock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInvokeAPI scripts one outcome per attempt and counts calls.
type fakeInvokeAPI struct {
	bodies []string
	errs   []error
	calls  int
	onCall func(attempt int)
}

func (f *fakeInvokeAPI) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	attempt := f.calls
	f.calls++
	if f.onCall != nil {
		f.onCall(attempt)
	}
	if err := f.errs[attempt]; err != nil {
		return nil, err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.bodies[attempt])}, nil
}

func newTestClient(api *fakeInvokeAPI, backoff time.Duration) *RuntimeClient {
	return &RuntimeClient{
		api:     api,
		modelID: "anthropic.claude-3-haiku",
		retries: 1,
		backoff: backoff,
	}
}

const textBody = `{"content":[{"type":"text","text":"<html>ok</html>"}]}`

func TestGenerateTextFirstAttempt(t *testing.T) {
	api := &fakeInvokeAPI{bodies: []string{textBody}, errs: []error{nil}}
	client := newTestClient(api, time.Millisecond)

	got, err := client.GenerateText(context.Background(), "prompt", 100, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", got)
	assert.Equal(t, 1, api.calls)
}

func TestGenerateTextRetriesOnceThenSucceeds(t *testing.T) {
	api := &fakeInvokeAPI{
		bodies: []string{"", textBody},
		errs:   []error{errors.New("ThrottlingException: rate exceeded"), nil},
	}
	client := newTestClient(api, time.Millisecond)

	got, err := client.GenerateText(context.Background(), "prompt", 100, 0.2)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", got)
	assert.Equal(t, 2, api.calls)
}

func TestGenerateTextStopsAfterOneRetry(t *testing.T) {
	throttled := errors.New("ThrottlingException: rate exceeded")
	api := &fakeInvokeAPI{
		bodies: []string{"", ""},
		errs:   []error{throttled, throttled},
	}
	client := newTestClient(api, time.Millisecond)

	_, err := client.GenerateText(context.Background(), "prompt", 100, 0.2)
	assert.ErrorIs(t, err, throttled)
	assert.Equal(t, 2, api.calls)
}

func TestGenerateTextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeInvokeAPI{
		bodies: []string{""},
		errs:   []error{errors.New("ThrottlingException: rate exceeded")},
	}
	// Cancel after the first failure so the backoff sleep is interrupted
	// before the retry fires. The long backoff would hang the test if the
	// sleep ignored the context.
	api.onCall = func(int) { cancel() }
	client := newTestClient(api, time.Minute)

	_, err := client.GenerateText(ctx, "prompt", 100, 0.2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, api.calls)
}
