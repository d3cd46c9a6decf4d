package markup

const (
	defaultBodyBackground = "#F4F4F5"
	defaultFontFamily     = "Arial, Helvetica, sans-serif"
)

// resetCSS normalizes client defaults that otherwise leak into the layout.
const resetCSS = `body { margin: 0; padding: 0; -webkit-text-size-adjust: 100%; -ms-text-size-adjust: 100%; }
table, td { border-collapse: collapse; mso-table-lspace: 0pt; mso-table-rspace: 0pt; }
img { border: 0; outline: none; text-decoration: none; -ms-interpolation-mode: bicubic; }
p, h1, h2, h3, h4, h5, h6 { margin: 0; }
a { text-decoration: underline; }`
