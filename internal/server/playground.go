package server

const playgroundHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Contract Assistant Playground</title>
  <style>
    body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
    textarea { width: 100%; height: 5rem; font-size: 1rem; }
    button { padding: 0.5rem 1.5rem; font-size: 1rem; cursor: pointer; }
    pre { background: #f4f4f4; padding: 1rem; white-space: pre-wrap; }
    .citations { color: #555; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>Contract Assistant Playground</h1>
  <p>Ask a question about the ingested contract documents.</p>
  <textarea id="input" placeholder="e.g. What is the termination clause?"></textarea>
  <p><button onclick="invoke()">Invoke</button></p>
  <pre id="answer"></pre>
  <div id="citations" class="citations"></div>
  <script>
    async function invoke() {
      const input = document.getElementById('input').value;
      const answerEl = document.getElementById('answer');
      const citationsEl = document.getElementById('citations');
      answerEl.textContent = '...';
      citationsEl.textContent = '';
      try {
        const resp = await fetch('/contract-assistant/invoke', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify({ input: input }),
        });
        const body = await resp.json();
        if (!resp.ok) {
          answerEl.textContent = 'Error: ' + body.error;
          return;
        }
        answerEl.textContent = body.output.answer;
        const cites = body.output.citations || [];
        citationsEl.textContent = cites.map(
          c => c.source_file + ' (Page ' + c.page_number + ')'
        ).join(', ');
      } catch (err) {
        answerEl.textContent = 'Error: ' + err;
      }
    }
  </script>
</body>
</html>
`
