package server

import "github.com/gofiber/fiber/v2"

// Minimal operator page: command box plus the three safety buttons.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Roboarm</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <style>
        body { font-family: monospace; padding: 20px; background: #1a1a1a; color: #0f0; }
        h1 { color: #0ff; }
        pre { background: #000; padding: 10px; border: 1px solid #0f0; }
        .btn { background: #0f0; color: #000; border: none; padding: 10px 20px; margin: 5px; cursor: pointer; }
        .btn:hover { background: #0ff; }
        input { background: #000; color: #0f0; border: 1px solid #0f0; padding: 5px; }
    </style>
</head>
<body>
    <h1>Roboarm Controller</h1>
    <div>
        <button class="btn" onclick="sendCmd('M17')">Enable</button>
        <button class="btn" onclick="sendCmd('M18')">Disable</button>
        <button class="btn" onclick="sendCmd('M112')">E-STOP</button>
        <button class="btn" onclick="getStatus()">Status</button>
    </div>
    <div style="margin-top: 20px;">
        <input type="text" id="cmd" placeholder="G0 J1:1000" style="width: 200px;">
        <button class="btn" onclick="sendInput()">Send</button>
    </div>
    <pre id="output">Ready...</pre>
    <script>
        async function sendCmd(cmd) {
            const res = await fetch("/api/command", {
                method: "POST",
                headers: {"Content-Type": "application/json"},
                body: JSON.stringify({command: cmd})
            });
            const data = await res.json();
            document.getElementById("output").textContent = JSON.stringify(data, null, 2);
        }
        async function getStatus() {
            const res = await fetch("/api/status");
            const data = await res.json();
            document.getElementById("output").textContent = JSON.stringify(data, null, 2);
        }
        function sendInput() {
            const cmd = document.getElementById("cmd").value;
            if (cmd) sendCmd(cmd);
        }
        document.getElementById("cmd").addEventListener("keypress", (e) => {
            if (e.key === "Enter") sendInput();
        });
    </script>
</body>
</html>`

func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(indexHTML)
}
