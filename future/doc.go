// Package future provides a minimal promise/future primitive for representing
// the result of an asynchronous computation.
//
// A Future[T] resolves exactly once with a value and an error. Consumers can
// block on Await, bound the wait with AwaitWithTimeout, poll with IsComplete,
// select on Done, or register completion callbacks with OnComplete.
//
// # Usage
//
//	fut := future.Go(ctx, func(ctx context.Context) (string, error) {
//		return fetchRemote(ctx)
//	})
//
//	result, err := fut.AwaitWithTimeout(5 * time.Second)
//
// For adapting callback-based APIs, Pending returns an unresolved future
// together with its resolve function:
//
//	fut, resolve := future.Pending[Response]()
//	client.Do(req, func(resp Response, err error) { resolve(resp, err) })
//
// OnComplete is the integration point for event loops: a completion callback
// can feed the result back into a serialized dispatch stream without any
// blocking goroutine in between.
package future
