package widget

// Page is the served booking page. It carries no booking logic: the inline
// script opens a session, posts user actions, and applies the returned
// effects verbatim. All branching lives in the Controller.
const Page = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Silver Fox Grooming - Book an Appointment</title>
<style>
  :root { --accent: #b08d57; --bg: #14120f; --card: #1f1c17; --text: #f3ede3; --muted: #9a9181; }
  * { box-sizing: border-box; }
  body { margin: 0; font-family: Georgia, serif; background: var(--bg); color: var(--text); }
  .widget { max-width: 960px; margin: 0 auto; padding: 2rem 1rem; }
  h1 { text-align: center; letter-spacing: 0.08em; }
  .progress-bar { height: 4px; background: var(--card); border-radius: 2px; margin: 1rem 0 0.5rem; }
  #progress-fill { height: 100%; width: 33%; background: var(--accent); border-radius: 2px; transition: width 0.3s; }
  .progress-steps { display: flex; justify-content: space-between; color: var(--muted); font-size: 0.85rem; margin-bottom: 2rem; }
  .progress-steps span.active { color: var(--accent); }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 1rem; }
  .service-card, .barber-card { background: var(--card); border: 1px solid transparent; border-radius: 8px; padding: 1.25rem; cursor: pointer; text-align: center; }
  .service-card:hover { border-color: var(--accent); }
  .service-card.selected { border-color: var(--accent); box-shadow: 0 0 0 1px var(--accent); }
  .service-icon { font-size: 2rem; }
  .service-price, .barber-price { color: var(--accent); font-size: 1.25rem; font-weight: bold; }
  .service-duration, .service-description, .barber-specialty, .muted { color: var(--muted); font-size: 0.9rem; }
  .barber-avatar { width: 56px; height: 56px; margin: 0 auto 0.5rem; border-radius: 50%; background: var(--accent); color: var(--bg); display: flex; align-items: center; justify-content: center; font-size: 1.5rem; }
  .available-times { margin: 0.75rem 0; font-size: 0.9rem; }
  .time-slot { padding: 0.25rem 0; }
  .time-slot.unavailable { color: var(--muted); font-style: italic; }
  .book-btn, .secondary-btn { background: var(--accent); color: var(--bg); border: none; border-radius: 4px; padding: 0.6rem 1.2rem; cursor: pointer; font-size: 0.95rem; }
  .secondary-btn { background: transparent; color: var(--muted); border: 1px solid var(--muted); margin-top: 1.5rem; }
  #selected-service-info { background: var(--card); border-radius: 8px; padding: 1rem 1.25rem; margin-bottom: 1.5rem; }
  .hidden { display: none !important; }
  #loading, #error { text-align: center; padding: 2rem; color: var(--muted); }
  #error { color: #d08770; }
  .modal { position: fixed; inset: 0; background: rgba(0,0,0,0.7); display: flex; align-items: center; justify-content: center; }
  .modal-content { background: var(--card); border-radius: 8px; padding: 2rem; max-width: 420px; width: 90%; }
  .modal-content .total { border-top: 1px solid var(--muted); padding-top: 0.75rem; font-size: 1.1rem; }
</style>
</head>
<body>
<div class="widget">
  <h1>Silver Fox Grooming</h1>
  <div class="progress-bar"><div id="progress-fill"></div></div>
  <div class="progress-steps">
    <span id="progress-step-1" class="active">Service</span>
    <span id="progress-step-2">Barber &amp; Time</span>
    <span id="progress-step-3">Confirm</span>
  </div>

  <div id="step-services" class="step">
    <h2>Choose Your Service</h2>
    <div id="services-grid" class="grid"></div>
  </div>

  <div id="step-barbers" class="step hidden">
    <h2>Choose Your Barber</h2>
    <div id="selected-service-info"></div>
    <div id="barbers-grid" class="grid"></div>
    <button id="back-btn" class="secondary-btn">&larr; Back to Services</button>
  </div>

  <div id="loading" class="hidden">Loading&hellip;</div>
  <div id="error" class="hidden">Something went wrong. Please try again or call us.</div>

  <div id="success-modal" class="modal hidden">
    <div class="modal-content">
      <h2>Confirm Your Booking</h2>
      <div id="booking-summary"></div>
      <button id="checkout-btn" class="book-btn">Confirm &amp; Pay</button>
      <button id="modal-back-btn" class="secondary-btn">Change Selection</button>
    </div>
  </div>
</div>

<script>
(function () {
  var sessionId = null;

  function setProgress(step) {
    document.getElementById("progress-fill").style.width = (step / 3) * 100 + "%";
    for (var i = 1; i <= 3; i++) {
      document.getElementById("progress-step-" + i).classList.toggle("active", i <= step);
    }
  }

  function show(id) { document.getElementById(id).classList.remove("hidden"); }
  function hide(id) { document.getElementById(id).classList.add("hidden"); }

  function apply(res) {
    setProgress(res.step);
    (res.effects || []).forEach(function (e) {
      switch (e.type) {
        case "render":
          document.getElementById(e.target).innerHTML = e.html;
          break;
        case "show-step":
          document.querySelectorAll(".step").forEach(function (s) { s.classList.add("hidden"); });
          show(e.step === 2 ? "step-barbers" : "step-services");
          hide("loading");
          hide("error");
          break;
        case "show-modal":
          hide("loading");
          show("success-modal");
          break;
        case "hide-modal":
          hide("success-modal");
          break;
        case "show-error":
          hide("loading");
          show("error");
          break;
        case "redirect":
          window.location.href = e.url;
          break;
        case "dial":
          hide("loading");
          window.open(e.url, "_self");
          break;
      }
    });
  }

  function post(path, body) {
    return fetch(path, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(body || {})
    }).then(function (r) {
      if (!r.ok) throw new Error("request failed: " + r.status);
      return r.json();
    });
  }

  function act(action, body) {
    show("loading");
    post("/widget/sessions/" + sessionId + "/" + action, body)
      .then(apply)
      .catch(function () { hide("loading"); show("error"); });
  }

  document.getElementById("services-grid").addEventListener("click", function (ev) {
    var card = ev.target.closest(".service-card");
    if (!card) return;
    act("select-service", { serviceId: card.dataset.serviceId });
  });

  document.getElementById("barbers-grid").addEventListener("click", function (ev) {
    var btn = ev.target.closest(".book-btn");
    if (!btn) return;
    if (btn.dataset.action === "call") {
      act("call");
      return;
    }
    act("select-slot", {
      barberId: btn.dataset.barberId,
      datetime: btn.dataset.datetime,
      display: btn.dataset.display
    });
  });

  document.getElementById("back-btn").addEventListener("click", function () { act("back"); });
  document.getElementById("modal-back-btn").addEventListener("click", function () { act("back"); });
  document.getElementById("checkout-btn").addEventListener("click", function () { act("confirm"); });

  show("loading");
  post("/widget/sessions")
    .then(function (res) {
      sessionId = res.sessionId;
      apply(res);
    })
    .catch(function () { hide("loading"); show("error"); });
})();
</script>
</body>
</html>
`
