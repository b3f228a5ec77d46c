package sink

// tooltipFunc binds the hover bubble of one <svg>. The tooltip group is the
// last child of the svg; it holds the bubble path and the text.
const tooltipFunc = `
    function bindTooltips(svg) {
      const tip = svg.lastElementChild;
      const bubble = tip.querySelector('path');
      const label = tip.querySelector('text');
      svg.querySelectorAll('rect[data-tooltip-text]').forEach(el => {
        el.addEventListener('mousemove', e => {
          const ctm = svg.getScreenCTM();
          const a = ctm.a || 1, d = ctm.d || 1;
          const x = (e.clientX - ctm.e - 8) / a;
          const y = (e.clientY - ctm.f - 34) / d;
          label.textContent = el.dataset.tooltipText;
          if (el.dataset.tooltipPath) bubble.setAttribute('d', el.dataset.tooltipPath);
          tip.setAttribute('transform', 'translate(' + x + ' ' + y + ')');
          tip.setAttribute('style', 'opacity: 100;');
        });
        el.addEventListener('mouseout', () => tip.setAttribute('style', 'opacity: 0;'));
        el.addEventListener('mousedown', () => console.log(el.dataset.tooltipText + ' selected'));
      });
    }`

const svgTooltipJS = tooltipFunc + `
    bindTooltips(document.querySelector('svg'));`

const pageCSS = `
    body { font-family: sans-serif; margin: 24px; }
    h1 { font-size: 18px; font-weight: normal; }
    .modes { margin-bottom: 12px; }
    .modes button { border: 1px solid #95B3D7; background: white; padding: 4px 12px; cursor: pointer; }
    .modes button.active { background: #95B3D7; color: white; }
    .karyotype { display: none; }
    .karyotype.active { display: block; }
    rect[data-tooltip-text] { cursor: pointer; }`

const pageJS = tooltipFunc + `
    document.querySelectorAll('.karyotype svg').forEach(bindTooltips);
    function show(mode) {
      document.querySelectorAll('.karyotype').forEach(k => k.classList.toggle('active', k.dataset.mode === mode));
      document.querySelectorAll('.modes button').forEach(b => b.classList.toggle('active', b.dataset.mode === mode));
    }
    document.querySelectorAll('.modes button').forEach(b => b.addEventListener('click', () => show(b.dataset.mode)));`
