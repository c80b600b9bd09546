package input_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/dotfall/input"
)

// ExamplePump connects a producer goroutine to an ordered handler list.
// The producer only posts; every handler runs on the consuming goroutine.
func ExamplePump() {
	n := input.NewNotifier(1)

	var d input.Dispatcher
	d.Register(input.HandlerFunc(func(e input.Event) error {
		fmt.Println("game:", e)
		return nil
	}))
	d.Register(input.HandlerFunc(func(e input.Event) error {
		fmt.Println("log:", e)
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	go func() {
		for !n.Post(input.RotateCW) {
			time.Sleep(time.Millisecond)
		}
	}()

	err := input.Pump(ctx, n, &d)
	fmt.Println(err)

	// Output:
	// game: RotateCW
	// log: RotateCW
	// context deadline exceeded
}
