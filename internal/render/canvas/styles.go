package canvas

// Stylesheet holds the design tokens and component rules the markup relies
// on. Pages embedding canvas output include it once.
const Stylesheet = `
:root {
  --wd-blueberry-400: #0875e1;
  --wd-blueberry-500: #005cb9;
  --wd-soap-100: #f5f7fa;
  --wd-soap-300: #e8ebed;
  --wd-soap-500: #ced3d9;
  --wd-licorice-300: #5e6a75;
  --wd-black-pepper-400: #333333;
  --wd-green-apple-400: #43c463;
  --wd-cantaloupe-400: #ffa126;
  --wd-cinnamon-500: #de2e21;
  --wd-space-xs: 8px;
  --wd-space-s: 12px;
  --wd-space-m: 16px;
  --wd-space-l: 24px;
  --wd-radius: 8px;
  --wd-font: "Roboto", "Helvetica Neue", Helvetica, Arial, sans-serif;
}
.wd-page { padding: var(--wd-space-l); background: var(--wd-soap-100); font-family: var(--wd-font); color: var(--wd-black-pepper-400); min-height: 100%; }
.wd-stack { display: flex; flex-direction: column; }
.wd-button-row { display: flex; gap: 12px; align-items: center; flex-wrap: wrap; }
.wd-heading { margin: 0 0 var(--wd-space-m); font-weight: 700; }
.wd-heading--large { font-size: 28px; }
.wd-heading--small { font-size: 18px; }
.wd-subtext { font-size: 14px; color: var(--wd-licorice-300); margin: 0; }
.wd-text { font-size: 14px; margin: 0; }
.wd-card { background: #fff; border: 1px solid var(--wd-soap-500); border-radius: var(--wd-radius); }
.wd-card__heading { padding: var(--wd-space-m) var(--wd-space-l) 0; }
.wd-card__body { padding: var(--wd-space-l); }
.wd-card__image { width: 100%; border-radius: var(--wd-radius) var(--wd-radius) 0 0; }
.wd-btn { font: 600 14px var(--wd-font); border-radius: 999px; padding: 8px 24px; cursor: pointer; border: 1px solid transparent; }
.wd-btn--primary { background: var(--wd-blueberry-400); color: #fff; }
.wd-btn--primary:hover { background: var(--wd-blueberry-500); }
.wd-btn--secondary { background: #fff; border-color: var(--wd-licorice-300); color: var(--wd-black-pepper-400); }
.wd-btn--tertiary { background: transparent; color: var(--wd-blueberry-400); }
.wd-btn[disabled] { opacity: .5; cursor: not-allowed; }
.wd-status { display: inline-flex; border-radius: 4px; padding: 2px 8px; font-size: 12px; font-weight: 700; text-transform: uppercase; }
.wd-pill { display: inline-flex; border-radius: 999px; padding: 2px 10px; font-size: 12px; }
.wd-status--positive { background: #ebfff0; color: #0a8a2d; }
.wd-status--caution { background: #fff5e6; color: #b35900; }
.wd-status--critical { background: #ffeeee; color: var(--wd-cinnamon-500); }
.wd-status--neutral { background: var(--wd-soap-300); color: var(--wd-licorice-300); }
.wd-banner, .wd-toast { display: flex; gap: var(--wd-space-s); align-items: center; padding: var(--wd-space-s) var(--wd-space-m); border-radius: var(--wd-radius); }
.wd-toast { box-shadow: 0 4px 12px rgba(0,0,0,.15); background: #fff; }
.wd-modal { position: relative; background: rgba(0,0,0,.5); padding: var(--wd-space-l); display: flex; justify-content: center; }
.wd-modal__card { max-width: 480px; width: 100%; }
.wd-modal__actions { display: flex; justify-content: flex-end; gap: var(--wd-space-xs); padding: 0 var(--wd-space-l) var(--wd-space-l); }
.wd-avatar { display: inline-flex; align-items: center; justify-content: center; border-radius: 50%; background: var(--wd-soap-300); font-weight: 700; }
.wd-avatar--small { width: 32px; height: 32px; }
.wd-avatar--medium { width: 48px; height: 48px; }
.wd-avatar--large { width: 64px; height: 64px; }
.wd-avatar--dark { background: var(--wd-blueberry-400); color: #fff; }
.wd-breadcrumbs__list { display: flex; gap: var(--wd-space-xs); list-style: none; padding: 0; margin: 0 0 var(--wd-space-m); font-size: 14px; }
.wd-breadcrumbs__item::after { content: "›"; margin-left: var(--wd-space-xs); color: var(--wd-licorice-300); }
.wd-link { color: var(--wd-blueberry-400); text-decoration: none; }
.wd-footer { border-top: 1px solid var(--wd-soap-500); padding-top: var(--wd-space-m); display: flex; gap: var(--wd-space-m); flex-wrap: wrap; }
.wd-formfield { display: flex; flex-direction: column; gap: 4px; }
.wd-formfield__label { font-size: 14px; font-weight: 500; }
.wd-formfield__required { color: var(--wd-cinnamon-500); margin-left: 4px; }
.wd-formfield__error { color: var(--wd-cinnamon-500); font-size: 12px; margin: 0; }
.wd-formfield__hint { color: var(--wd-licorice-300); font-size: 12px; margin: 0; }
.wd-formfield--error .wd-textinput, .wd-formfield--error .wd-select { border-color: var(--wd-cinnamon-500); }
.wd-textinput, .wd-select, .wd-textarea { font: 14px var(--wd-font); padding: 8px; border: 1px solid var(--wd-soap-500); border-radius: 4px; }
.wd-table { width: 100%; border-collapse: collapse; background: #fff; }
.wd-table__header { text-align: left; font-size: 12px; padding: var(--wd-space-s); background: var(--wd-soap-100); border-bottom: 1px solid var(--wd-soap-500); }
.wd-table__cell { padding: var(--wd-space-s); border-bottom: 1px solid var(--wd-soap-300); font-size: 14px; }
.wd-cell-list { display: inline-flex; flex-wrap: wrap; gap: 4px; }
.wd-placeholder { color: var(--wd-licorice-300); }
.wd-tabs__list { display: flex; gap: var(--wd-space-l); border-bottom: 1px solid var(--wd-soap-500); margin-bottom: var(--wd-space-m); }
.wd-tabs__item { background: none; border: 0; border-bottom: 3px solid transparent; padding: var(--wd-space-xs) 0; cursor: pointer; font: 500 14px var(--wd-font); }
.wd-tabs__item[aria-selected="true"] { border-bottom-color: var(--wd-blueberry-400); color: var(--wd-blueberry-400); }
.wd-switch__track { width: 40px; height: 20px; border-radius: 999px; border: 0; background: var(--wd-soap-500); }
.wd-switch__track--true { background: var(--wd-blueberry-400); }
.wd-segmented { display: inline-flex; border: 1px solid var(--wd-soap-500); border-radius: 4px; overflow: hidden; }
.wd-segmented__item { border: 0; background: #fff; padding: 6px 12px; }
.wd-segmented__item[aria-checked="true"] { background: var(--wd-blueberry-400); color: #fff; }
.wd-swatch { display: inline-block; width: 20px; height: 20px; border-radius: 4px; margin-right: 4px; }
.wd-timeline { border-left: 2px solid var(--wd-soap-500); padding-left: var(--wd-space-m); list-style: none; }
.wd-stepper { display: flex; gap: var(--wd-space-m); list-style: none; padding: 0; }
.wd-stepper__step--done { color: #0a8a2d; }
.wd-stepper__step--current { font-weight: 700; color: var(--wd-blueberry-400); }
.wd-stepper__step--upcoming { color: var(--wd-licorice-300); }
.wd-stepper__index { display: inline-block; width: 20px; }
.wd-progress { height: 8px; border-radius: 4px; background: var(--wd-soap-300); }
.wd-progress__fill { height: 8px; border-radius: 4px; background: var(--wd-blueberry-400); }
.wd-chart__row { display: flex; align-items: center; gap: var(--wd-space-xs); font-size: 12px; }
.wd-chart__label { width: 96px; }
.wd-chart__bar { height: 12px; border-radius: 2px; background: var(--wd-blueberry-400); }
.wd-code { background: #1e1e1e; color: #f5f5f5; padding: var(--wd-space-m); border-radius: var(--wd-radius); overflow-x: auto; }
.wd-tile { padding: var(--wd-space-l); text-align: center; border-style: dashed; }
.wd-tile__glyph { font-size: 28px; }
.wd-tooltip { position: relative; display: inline-block; }
.wd-tooltip__bubble { display: none; position: absolute; bottom: 100%; background: var(--wd-black-pepper-400); color: #fff; font-size: 12px; padding: 4px 8px; border-radius: 4px; white-space: nowrap; }
.wd-tooltip:hover .wd-tooltip__bubble { display: block; }
.wd-unknown { padding: var(--wd-space-xs); border: 1px dashed var(--wd-soap-500); border-radius: 4px; }
.wd-unknown__label { color: #6b6b6b; font-size: 12px; }
.wd-draggable { outline: 1px dashed transparent; }
.wd-draggable:hover { outline-color: var(--wd-blueberry-400); }
.wd-draggable__content { pointer-events: none; }
.drag-handle { position: absolute; top: -8px; left: -8px; width: 16px; height: 16px; border-radius: 50%; background: var(--wd-blueberry-400); color: #fff; font-size: 8px; font-weight: bold; display: flex; align-items: center; justify-content: center; cursor: grab; z-index: 9999; border: 1px solid #fff; box-shadow: 0 2px 4px rgba(0,0,0,.1); user-select: none; }
`
