package ui

import "html/template"

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Contract Assistant</title>
  <style>
    body { font-family: sans-serif; max-width: 820px; margin: 2rem auto; padding: 0 1rem; }
    .tabs button { padding: 0.5rem 1rem; font-size: 1rem; cursor: pointer; border: 1px solid #ccc; background: #eee; }
    .tabs button.active { background: #fff; border-bottom: none; }
    .tab { display: none; border: 1px solid #ccc; padding: 1rem; }
    .tab.active { display: block; }
    .status.ok { color: #060; }
    .status.warn { color: #960; }
    .status.error { color: #a00; }
    textarea, input[type=text] { width: 100%; font-size: 1rem; }
    .answer { background: #f7f7f7; padding: 1rem; margin-top: 1rem; }
  </style>
</head>
<body>
  <h1>Contract Assistant</h1>
  <p>RAG system with citations, REST API, and evaluation.</p>

  <div class="tabs">
    <button id="btn-ingest" onclick="show('ingest')">1. Ingestion</button>
    <button id="btn-chat" onclick="show('chat')">2. Chat</button>
    <button id="btn-api" onclick="show('api')">3. API Server</button>
  </div>

  <div id="tab-ingest" class="tab">
    <p>Upload your contract files (PDF, TXT, DOCX) to build the knowledge base.</p>
    <form method="post" action="/ingest" enctype="multipart/form-data">
      <input type="file" name="files" multiple accept=".pdf,.txt,.docx,.pptx,.xlsx,.ods">
      <p><button type="submit">Ingest &amp; Save Index</button></p>
    </form>
    {{if .Status}}<p class="status {{.StatusKind}}">{{.Status}}</p>{{end}}
  </div>

  <div id="tab-chat" class="tab">
    <p>Ask questions about your uploaded contracts.</p>
    <form method="post" action="/chat">
      <input type="text" name="question" value="{{.Question}}"
             placeholder="e.g. What is the termination clause?">
      <p><button type="submit">Send</button></p>
    </form>
    {{if .AnswerHTML}}<div class="answer">{{.AnswerHTML}}</div>{{end}}
  </div>

  <div id="tab-api" class="tab">
    <h3>REST API backend</h3>
    <p>Start the API server with <code>contract-assistant serve</code>, then access:</p>
    <ul>
      <li>Invoke: <code>POST http://{{.APIHost}}:{{.APIPort}}/contract-assistant/invoke</code></li>
      <li>Batch: <code>POST http://{{.APIHost}}:{{.APIPort}}/contract-assistant/batch</code></li>
      <li>Stream: <code>POST http://{{.APIHost}}:{{.APIPort}}/contract-assistant/stream</code></li>
      <li>Playground: <a href="http://{{.APIHost}}:{{.APIPort}}/contract-assistant/playground">http://{{.APIHost}}:{{.APIPort}}/contract-assistant/playground</a></li>
    </ul>
  </div>

  <script>
    function show(name) {
      for (const t of ['ingest', 'chat', 'api']) {
        document.getElementById('tab-' + t).classList.toggle('active', t === name);
        document.getElementById('btn-' + t).classList.toggle('active', t === name);
      }
    }
    show({{if .AnswerHTML}}'chat'{{else if .Status}}'ingest'{{else}}'ingest'{{end}});
  </script>
</body>
</html>
`))
