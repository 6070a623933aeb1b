package newbill

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sharedhtml "billable/frontend/shared/html"
	"billable/frontend/shared/nav"
)

var expenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// NewBillPage renders the bill creation form. The file input stages the
// receipt through the upload endpoint before the form itself is submitted.
func NewBillPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(nav.RenderTopNav(data.Nav))
		b.WriteString(`<main class="new-bill-page"><h1>Envoyer une note de frais</h1>`)
		writeForm(&b)
		b.WriteString(formScript(data.Nav.Username, data.Message))
		b.WriteString(`</main>`)
		_, err := io.WriteString(w, sharedhtml.RenderLayout("Billable - Nouvelle note de frais", b.String()))
		return err
	})
}

func writeForm(b *strings.Builder) {
	b.WriteString(`<form data-testid="form-new-bill" method="POST" action="/app/bills" enctype="application/x-www-form-urlencoded">`)
	b.WriteString(`<label>Type de dépense <select data-testid="expense-type" name="expense-type" required>`)
	for _, t := range expenseTypes {
		b.WriteString(`<option value="` + html.EscapeString(t) + `">` + html.EscapeString(t) + `</option>`)
	}
	b.WriteString(`</select></label>`)
	b.WriteString(`<label>Nom de la dépense <input data-testid="expense-name" name="expense-name" type="text" required></label>`)
	b.WriteString(`<label>Date <input data-testid="datepicker" name="datepicker" type="date" required></label>`)
	b.WriteString(`<label>Montant TTC <input data-testid="amount" name="amount" type="number" step="0.01" min="0" required></label>`)
	b.WriteString(`<label>TVA <input data-testid="vat" name="vat" type="number" step="0.01" min="0"></label>`)
	b.WriteString(`<label>% <input data-testid="pct" name="pct" type="number" min="0" max="100"></label>`)
	b.WriteString(`<label>Commentaire <textarea data-testid="commentary" name="commentary"></textarea></label>`)
	b.WriteString(`<label>Justificatif <input data-testid="file" id="bill-file" type="file" accept=".jpg,.jpeg,.png"></label>`)
	b.WriteString(`<input type="hidden" name="bill-id" id="bill-id">`)
	b.WriteString(`<input type="hidden" name="file-url" id="file-url">`)
	b.WriteString(`<input type="hidden" name="file-name" id="file-name">`)
	b.WriteString(`<button data-testid="btn-send-bill" type="submit">Envoyer</button>`)
	b.WriteString(`</form>`)
}

// formScript wires the extension gate and the asynchronous receipt upload.
// A rejected file never reaches the server; a failed upload leaves the
// hidden fields unset so the submit gate fires again.
func formScript(email, serverMessage string) string {
	var b strings.Builder
	b.WriteString(`<script>
(function () {
  var badFormat = ` + strconv.Quote(BadFormatMessage) + `;
  var email = ` + strconv.Quote(email) + `;
  var fileInput = document.getElementById("bill-file");
  var form = document.querySelector('[data-testid="form-new-bill"]');

  function csrfToken() {
    var parts = document.cookie ? document.cookie.split(";") : [];
    for (var i = 0; i < parts.length; i++) {
      var c = parts[i].trim();
      if (c.indexOf("X-CSRF-Token=") === 0) return decodeURIComponent(c.substring(13));
    }
    return "";
  }

  fileInput.addEventListener("change", function () {
    var file = fileInput.files[0];
    if (!file || !/\.(jpg|jpeg|png)$/i.test(file.name)) {
      alert(badFormat);
      fileInput.value = "";
      return;
    }
    var payload = new FormData();
    payload.append("file", file);
    payload.append("email", email);
    fetch("/app/api/bills/upload", { method: "POST", body: payload, headers: { "X-CSRF-Token": csrfToken() } })
      .then(function (resp) {
        if (resp.status !== 200) throw new Error("upload failed: " + resp.status);
        return resp.json();
      })
      .then(function (ref) {
        document.getElementById("bill-id").value = ref.id;
        document.getElementById("file-url").value = ref.fileUrl;
        document.getElementById("file-name").value = ref.fileName;
      })
      .catch(function (err) {
        console.error(err);
      });
  });

  form.addEventListener("submit", function (e) {
    if (!document.getElementById("bill-id").value) {
      e.preventDefault();
      alert(badFormat);
    }
  });
})();
</script>`)
	if strings.TrimSpace(serverMessage) != "" {
		b.WriteString(`<script>alert(` + strconv.Quote(serverMessage) + `);</script>`)
	}
	return b.String()
}
