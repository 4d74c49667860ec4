package history

import (
	"encoding/json"
	"strings"
)

// ScriptName is the companion script the shell page loads.
const ScriptName = "history.js"

// ShellHTML returns the static viewer page for the given panel base path.
// The only interpolation is the absolute script URL, so the page works from
// both the trailing-slash and no-slash forms of the history route.
func ShellHTML(basePath string) string {
	return strings.ReplaceAll(shellHTML, "__SCRIPT_SRC__", basePath+"/"+ScriptName)
}

// RenderScript builds the viewer script: the session payload as a literal
// array, followed by the fixed client-side rendering code. Pure function of
// its input.
func RenderScript(sessions []Session) string {
	payload := []byte("[]")
	if len(sessions) > 0 {
		if data, err := json.Marshal(sessions); err == nil {
			payload = data
		}
	}
	return "var SESSIONS = " + string(payload) + ";\n\n" + clientScript
}

const shellHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Session History</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; background: #11151c; color: #d8dee9; height: 100vh; }
  #layout { display: flex; height: 100vh; }
  #sidebar { width: 300px; min-width: 220px; border-right: 1px solid #232a36; display: flex; flex-direction: column; }
  #sidebar header { padding: 14px 16px; font-weight: 600; border-bottom: 1px solid #232a36; }
  #session-list { flex: 1; overflow-y: auto; }
  .session-item { padding: 10px 16px; cursor: pointer; border-bottom: 1px solid #1a2029; }
  .session-item:hover { background: #1a2029; }
  .session-item.selected { background: #223047; }
  .session-name { font-size: 13px; word-break: break-all; }
  .session-meta { font-size: 11px; color: #7b879b; margin-top: 2px; }
  .empty { padding: 16px; color: #7b879b; font-size: 13px; }
  #chat-pane { flex: 1; overflow-y: auto; padding: 20px; }
  .message { display: flex; gap: 10px; margin-bottom: 14px; max-width: 760px; }
  .message.assistant .avatar { background: #2e4a7a; }
  .avatar { width: 32px; height: 32px; border-radius: 50%; background: #3a4354; display: flex; align-items: center; justify-content: center; font-size: 13px; flex-shrink: 0; }
  .bubble { background: #1a2029; border-radius: 8px; padding: 10px 12px; flex: 1; }
  .message.user .bubble { background: #20293a; }
  .text { white-space: pre-wrap; font-size: 14px; line-height: 1.45; }
  .meta { font-size: 11px; color: #7b879b; margin-top: 6px; }
  .footer { color: #7b879b; font-size: 12px; padding: 10px 0; border-top: 1px solid #232a36; max-width: 760px; }
</style>
</head>
<body>
<div id="layout">
  <aside id="sidebar">
    <header>Sessions</header>
    <div id="session-list"></div>
  </aside>
  <main id="chat-pane"></main>
</div>
<script src="__SCRIPT_SRC__"></script>
</body>
</html>
`

// clientScript is the vendored browser-side viewer. It decodes the embedded
// SESSIONS payload and renders the sidebar and chat pane. Kept ES5-level and
// dependency-free so it runs in any webview.
const clientScript = `(function () {
  'use strict';

  function decodeBase64(b64) {
    var bin = atob(b64);
    var bytes = new Uint8Array(bin.length);
    for (var i = 0; i < bin.length; i++) bytes[i] = bin.charCodeAt(i);
    return new TextDecoder('utf-8').decode(bytes);
  }

  function flattenContent(content) {
    if (typeof content === 'string') return content;
    if (Array.isArray(content)) {
      var parts = [];
      for (var i = 0; i < content.length; i++) {
        var part = content[i];
        if (part && part.type === 'text' && typeof part.text === 'string') {
          parts.push(part.text);
        }
      }
      return parts.join('\n');
    }
    return '';
  }

  var BOILERPLATE = [/\bNO_REPLY\b/g, /\bHEARTBEAT_OK\b/g];

  function stripBoilerplate(text) {
    for (var i = 0; i < BOILERPLATE.length; i++) {
      text = text.replace(BOILERPLATE[i], '');
    }
    return text;
  }

  function sessionLabels(name) {
    var labels = [];
    if (name.indexOf('.reset.') !== -1) labels.push('reset');
    if (name.indexOf('.deleted.') !== -1) labels.push('deleted');
    return labels;
  }

  function parseSession(entry) {
    var text = decodeBase64(entry.base64Content);
    var lines = text.split('\n');
    var records = [];
    for (var i = 0; i < lines.length; i++) {
      var line = lines[i].trim();
      if (!line) continue;
      try {
        records.push(JSON.parse(line));
      } catch (e) {
        // Tolerate truncated tail lines from live writers.
      }
    }

    var date = null;
    if (records.length > 0 && records[0].timestamp) {
      date = new Date(records[0].timestamp);
    }

    var messages = [];
    var lastModel = null;
    for (var j = 0; j < records.length; j++) {
      var rec = records[j];
      if (rec.type !== 'message') continue;
      if (rec.role !== 'user' && rec.role !== 'assistant') continue;
      var content = stripBoilerplate(flattenContent(rec.content)).trim();
      if (!content) continue;
      if (rec.model) lastModel = rec.model;
      messages.push({
        role: rec.role,
        text: content,
        time: rec.timestamp ? new Date(rec.timestamp) : null,
        model: rec.model || null
      });
    }

    return {
      name: entry.name,
      date: date,
      labels: sessionLabels(entry.name),
      messages: messages,
      lastModel: lastModel
    };
  }

  function el(tag, className, text) {
    var node = document.createElement(tag);
    if (className) node.className = className;
    if (text) node.textContent = text;
    return node;
  }

  function formatDate(d) {
    return d ? d.toLocaleString() : 'unknown date';
  }

  function formatTime(d) {
    return d ? d.toLocaleTimeString() : '';
  }

  function renderList(sessions, onSelect) {
    var list = document.getElementById('session-list');
    list.innerHTML = '';
    if (sessions.length === 0) {
      list.appendChild(el('div', 'empty', 'No sessions recorded yet.'));
      return;
    }
    sessions.forEach(function (session, index) {
      var item = el('div', 'session-item');
      item.appendChild(el('div', 'session-name', session.name));
      var meta = formatDate(session.date);
      if (session.labels.length > 0) {
        meta += ' [' + session.labels.join(', ') + ']';
      }
      item.appendChild(el('div', 'session-meta', meta));
      item.addEventListener('click', function () {
        onSelect(index, item);
      });
      list.appendChild(item);
    });
  }

  function renderSession(session) {
    var pane = document.getElementById('chat-pane');
    pane.innerHTML = '';
    session.messages.forEach(function (msg) {
      var row = el('div', 'message ' + msg.role);
      row.appendChild(el('div', 'avatar', msg.role === 'user' ? 'U' : 'A'));
      var bubble = el('div', 'bubble');
      bubble.appendChild(el('div', 'text', msg.text));
      var meta = formatTime(msg.time);
      if (msg.model) {
        meta = meta ? meta + ' - ' + msg.model : msg.model;
      }
      if (meta) bubble.appendChild(el('div', 'meta', meta));
      row.appendChild(bubble);
      pane.appendChild(row);
    });
    var count = session.messages.length;
    var summary = count + (count === 1 ? ' message' : ' messages');
    if (session.lastModel) {
      summary += ' - last model ' + session.lastModel;
    }
    pane.appendChild(el('div', 'footer', summary));
  }

  function main() {
    var sessions = [];
    for (var i = 0; i < SESSIONS.length; i++) {
      try {
        sessions.push(parseSession(SESSIONS[i]));
      } catch (e) {
        // Skip sessions that fail to decode.
      }
    }
    renderList(sessions, function (index, item) {
      var nodes = document.querySelectorAll('.session-item');
      for (var k = 0; k < nodes.length; k++) {
        nodes[k].className = 'session-item';
      }
      item.className = 'session-item selected';
      renderSession(sessions[index]);
    });
    if (sessions.length > 0) renderSession(sessions[0]);
  }

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', main);
  } else {
    main();
  }
})();
`
