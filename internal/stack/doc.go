// Package stack provides the lifecycle orchestration core for the
// protocol stack.
//
// The stack boots a set of pluggable subsystem modules composing a
// layered protocol stack, resolves their inter-module dependencies into
// a deterministic start order, and runs every module lifecycle callback
// on one dedicated serial execution context (the stack handler).
//
// # Architecture
//
// The orchestrator combines four pieces:
//
//   - dependency.Graph resolves the requested module set into a stable
//     topological order, rejecting cycles and missing dependencies
//     before anything is instantiated.
//   - handler.Handler is the single worker goroutine all module
//     start/stop hooks and inter-module messages execute on, strictly
//     in submission order.
//   - stackmgr.StackManager owns the running instances, starts them in
//     resolved order, and stops them in exactly the reverse of the
//     order actually used.
//   - Stack itself selects the module set from the feature toggles,
//     guards the Idle/Running state machine, and owns the legacy
//     bridge objects.
//
// # Module selection
//
// StartFull reads the config.Features toggles once and unions the
// module slices they gate (see catalog.go). StartMinimal loads only the
// persistence module for low-power operation.
//
// # Failure policy
//
// The stack is fail-fast throughout. Configuration errors (cyclic or
// unsatisfied dependencies), protocol-of-use violations (double start,
// stop while idle, query while idle, missing leaf module), and module
// start/stop failures all abort the process through logging.Fatal with
// a diagnostic naming the offender. Success is the only non-fatal
// outcome of Start and Stop; there is no partial-start rollback.
//
// # Usage
//
//	st := stack.New(stack.Options{StoragePath: path})
//	st.StartFull(cfg.Features)
//	defer st.Stop()
//
//	if storageMod, ok := stack.GetModule[*storage.Module](st, storage.ModuleID); ok {
//		storageMod.Put(record)
//	}
package stack
