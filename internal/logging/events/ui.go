package events

import "featboard/internal/logging"

type UITracer struct{}

type FocusTracer struct{}

type ModeTracer struct{}

type CommandTracer struct{}

type EditorTracer struct{}

var (
	UI      = UITracer{}
	Focus   = FocusTracer{}
	Mode    = ModeTracer{}
	Command = CommandTracer{}
	Editor  = EditorTracer{}
)

func (UITracer) Selection(panel string, index int) {
	logging.Trace("ui.selection", map[string]interface{}{"panel": panel, "index": index})
}

func (UITracer) Scroll(panel string, offset int) {
	logging.Trace("ui.scroll", map[string]interface{}{"panel": panel, "offset": offset})
}

func (UITracer) Status(message string) {
	logging.Trace("ui.status", map[string]interface{}{"message": message})
}

func (UITracer) InterruptArmed() {
	logging.Trace("ui.interrupt-armed", nil)
}

func (FocusTracer) Change(from, to int, tab string) {
	logging.Trace("focus.change", map[string]interface{}{"from": from, "to": to, "tab": tab})
}

func (ModeTracer) Push(name string) {
	logging.Trace("mode.push", map[string]interface{}{"mode": name})
}

func (ModeTracer) Pop(name, reason string) {
	logging.Trace("mode.pop", map[string]interface{}{"mode": name, "reason": reason})
}

func (ModeTracer) Rejected(active, requested string) {
	logging.Trace("mode.rejected", map[string]interface{}{"active": active, "requested": requested})
}

func (CommandTracer) Queue(id, tool string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "tool": tool})
}

func (CommandTracer) Result(id, tool string, err error) {
	payload := map[string]interface{}{"id": id, "tool": tool}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}

func (CommandTracer) Stale(id, tool string) {
	logging.Trace("command.stale", map[string]interface{}{"id": id, "tool": tool})
}

func (EditorTracer) Open(kind, target string) {
	logging.Trace("editor.open", map[string]interface{}{"kind": kind, "target": target})
}

func (EditorTracer) Save(kind, target string, fields []string) {
	logging.Trace("editor.save", map[string]interface{}{"kind": kind, "target": target, "fields": fields})
}

func (EditorTracer) Cancel(kind, target string) {
	logging.Trace("editor.cancel", map[string]interface{}{"kind": kind, "target": target})
}

func (EditorTracer) External(program, path string) {
	logging.Trace("editor.external", map[string]interface{}{"program": program, "path": path})
}
