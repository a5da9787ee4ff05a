// Package strand runs named goroutines ("strands") as one structured group.
//
// A [Group] starts strands with [Group.Go], hands back a [Handle] that can
// be joined individually, and finalizes with [Group.Wait]. The first strand
// error cancels the group context so sibling strands unblock, and
// [Group.Wait] returns it wrapped in an [*Error] that names the failing
// strand.
//
// Each strand's context carries its name; [Name] reads it back so log
// sinks can tag lines with the emitting strand. [Sleep] is a
// cancellation-aware pause.
//
// A panic in a strand is captured with its stack trace. By default it is
// re-raised from [Group.Wait]; [WithPanicAsError] turns it into a
// [*PanicError] returned like any other strand error.
package strand
