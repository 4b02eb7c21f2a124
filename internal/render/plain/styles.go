package plain

// Stylesheet covers the utility classes plain markup uses, so exported
// previews look right without a CSS framework on the page.
const Stylesheet = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; color: #111827; }
.mx-auto { margin-left: auto; margin-right: auto; } .max-w-6xl { max-width: 72rem; }
.p-2 { padding: .5rem; } .p-4 { padding: 1rem; } .px-2 { padding-left: .5rem; padding-right: .5rem; }
.mb-3 { margin-bottom: .75rem; } .mb-4 { margin-bottom: 1rem; } .mb-6 { margin-bottom: 1.5rem; } .mt-1 { margin-top: .25rem; } .mt-4 { margin-top: 1rem; }
.flex { display: flex; } .inline-flex { display: inline-flex; } .grid { display: grid; } .flex-col { flex-direction: column; } .flex-wrap { flex-wrap: wrap; }
.items-center { align-items: center; } .gap-1 { gap: .25rem; } .gap-2 { gap: .5rem; } .gap-3 { gap: .75rem; } .gap-4 { gap: 1rem; }
.space-y-4 > * + * { margin-top: 1rem; }
.bg-white { background: #fff; } .bg-gray-50 { background: #f9fafb; } .bg-gray-100 { background: #f3f4f6; } .bg-gray-200 { background: #e5e7eb; }
.border { border: 1px solid #e5e7eb; } .border-b { border-bottom: 1px solid #e5e7eb; } .border-t { border-top: 1px solid #e5e7eb; } .border-dashed { border-style: dashed; }
.rounded { border-radius: .25rem; } .rounded-lg { border-radius: .5rem; } .rounded-full { border-radius: 9999px; } .shadow-sm { box-shadow: 0 1px 2px rgba(0,0,0,.05); }
.text-xs { font-size: .75rem; } .text-sm { font-size: .875rem; } .text-lg { font-size: 1.125rem; } .text-2xl { font-size: 1.5rem; }
.font-medium { font-weight: 500; } .font-semibold { font-weight: 600; } .font-bold { font-weight: 700; }
.text-gray-500 { color: #6b7280; } .text-gray-700 { color: #374151; } .text-gray-900 { color: #111827; } .text-red-500 { color: #ef4444; } .text-red-600 { color: #dc2626; }
.bg-green-100 { background: #dcfce7; } .text-green-800 { color: #166534; } .bg-yellow-100 { background: #fef9c3; } .text-yellow-800 { color: #854d0e; }
.bg-red-100 { background: #fee2e2; } .text-red-800 { color: #991b1b; } .text-gray-800 { color: #1f2937; }
.btn-primary, .btn-secondary, .btn-tertiary { padding: .5rem 1rem; border-radius: .375rem; font-weight: 500; cursor: pointer; }
.btn-primary { background: #2563eb; color: #fff; border: 1px solid #2563eb; }
.btn-secondary { background: #fff; color: #374151; border: 1px solid #d1d5db; }
.btn-tertiary { background: transparent; color: #2563eb; border: 1px solid transparent; }
.min-w-full { min-width: 100%; } th, td { text-align: left; } .px-6 { padding-left: 1.5rem; padding-right: 1.5rem; } .py-3 { padding-top: .75rem; padding-bottom: .75rem; } .py-4 { padding-top: 1rem; padding-bottom: 1rem; }
.w-full { width: 100%; } .h-2 { height: .5rem; } .h-3 { height: .75rem; } .h-10 { height: 2.5rem; } .w-10 { width: 2.5rem; } .bg-blue-500 { background: #3b82f6; } .bg-blue-600 { background: #2563eb; }
.switch { width: 2.5rem; height: 1.25rem; border-radius: 9999px; border: 0; background: #d1d5db; } .switch-true { background: #2563eb; }
`
