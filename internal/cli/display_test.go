package cli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/harmcalc/internal/cli/mocks"
	"github.com/agbru/harmcalc/internal/progress"
)

// TestDisplayProgress_SpinnerLifecycle verifies the strict call sequence on
// the spinner: started once, suffix updated for the terminal render, stopped
// once when the channel closes.
func TestDisplayProgress_SpinnerLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	spin := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		spin.EXPECT().Start(),
		spin.EXPECT().UpdateSuffix(gomock.Any()),
		spin.EXPECT().Stop(),
	)

	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()
	newSpinner = func(_ ...spinner.Option) Spinner { return spin }

	progressChan := make(chan progress.ProgressUpdate, 1)
	var wg sync.WaitGroup
	wg.Add(1)

	var buf bytes.Buffer
	go DisplayProgress(&wg, progressChan, 1, &buf)

	// A completed engine always renders, regardless of the refresh throttle.
	progressChan <- progress.ProgressUpdate{SummerIndex: 0, Value: 1.0}
	close(progressChan)
	wg.Wait()
}
