package dashboard

// dashboardTemplate is the single-page dashboard. Charts are rendered client
// side with ECharts from the /api/report view-model; a websocket tells the
// page to re-fetch when the position file changes on disk.
const dashboardTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <script src="https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"></script>
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 20px; background-color: #f5f5f5; }
        .container { max-width: 1400px; margin: 0 auto; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px; margin-bottom: 20px; }
        .header h1 { margin: 0; font-size: 2.2em; text-align: center; }
        .description { background: white; padding: 15px 20px; border-radius: 8px; margin-bottom: 20px; color: #555; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(220px, 1fr)); gap: 20px; margin-bottom: 20px; }
        .metric-card { background: white; border-radius: 10px; padding: 20px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); text-align: center; }
        .metric-label { color: #666; font-weight: 500; margin-bottom: 8px; }
        .metric-value { font-size: 1.6em; font-weight: bold; color: #333; }
        .card { background: white; border-radius: 10px; padding: 20px; box-shadow: 0 4px 6px rgba(0,0,0,0.1); margin-bottom: 20px; }
        .card h3 { margin-top: 0; color: #333; border-bottom: 2px solid #eee; padding-bottom: 10px; }
        .chart { width: 100%; height: 420px; }
        .chart-pair { display: grid; grid-template-columns: repeat(auto-fit, minmax(480px, 1fr)); gap: 20px; }
        .footer { text-align: center; color: #999; font-size: 0.85em; margin-top: 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
        </div>

        <div class="description">{{.Description}}</div>

        <div class="metrics" id="metrics"></div>

        <div class="card">
            <h3>Cumulative Profit/Loss Trend</h3>
            <div class="chart" id="chart-cumulative"></div>
        </div>

        <div class="chart-pair">
            <div class="card">
                <h3>Top 10 Most Profitable Instruments</h3>
                <div class="chart" id="chart-top"></div>
            </div>
            <div class="card">
                <h3>Top 10 Least Profitable Instruments</h3>
                <div class="chart" id="chart-bottom"></div>
            </div>
        </div>

        <div class="card">
            <h3>Distribution of Holding Periods (Days)</h3>
            <div class="chart" id="chart-holding"></div>
        </div>

        <div class="card">
            <h3>Holding Period: Profitable vs. Losing Trades</h3>
            <div class="chart" id="chart-outcome"></div>
        </div>

        <div class="card">
            <h3>Distribution of Realized Profit/Loss per Trade</h3>
            <div class="chart" id="chart-pl"></div>
        </div>

        <div class="footer" id="footer"></div>
    </div>

    <script>
        const charts = {};

        function chart(id) {
            if (!charts[id]) {
                charts[id] = echarts.init(document.getElementById(id));
            }
            return charts[id];
        }

        function renderMetrics(vm) {
            const container = document.getElementById('metrics');
            container.innerHTML = '';
            vm.metrics.forEach(function(m) {
                const card = document.createElement('div');
                card.className = 'metric-card';
                card.innerHTML = '<div class="metric-label">' + m.label + '</div>' +
                                 '<div class="metric-value">' + m.value + '</div>';
                container.appendChild(card);
            });
            document.getElementById('footer').textContent =
                'Report ' + vm.reportId + ' generated at ' + vm.generatedAt;
        }

        function renderCumulative(vm) {
            chart('chart-cumulative').setOption({
                tooltip: { trigger: 'axis' },
                legend: { data: ['Cumulative P/L', 'Monthly Cumulative P/L'] },
                xAxis: { type: 'time', name: 'Date' },
                yAxis: { type: 'value', name: 'Cumulative P/L ($)' },
                series: [
                    {
                        name: 'Cumulative P/L',
                        type: 'line',
                        showSymbol: false,
                        data: vm.cumulative.map(p => [p.date, p.value]),
                        markLine: {
                            silent: true,
                            symbol: 'none',
                            lineStyle: { type: 'dashed', color: 'red' },
                            label: { formatter: 'Break-Even', position: 'insideStartTop' },
                            data: [{ yAxis: 0 }]
                        }
                    },
                    {
                        name: 'Monthly Cumulative P/L',
                        type: 'line',
                        lineStyle: { type: 'dashed', color: 'orange' },
                        itemStyle: { color: 'orange' },
                        data: vm.monthlyCumulative.map(p => [p.date, p.value])
                    }
                ]
            }, true);
        }

        function renderRanking(id, entries) {
            chart(id).setOption({
                tooltip: { trigger: 'axis', axisPointer: { type: 'shadow' } },
                grid: { left: 100 },
                xAxis: { type: 'value', name: 'Total Realized P/L ($)' },
                yAxis: { type: 'category', data: entries.map(e => e.instrument) },
                series: [{
                    type: 'bar',
                    data: entries.map(e => ({
                        value: e.totalPl,
                        itemStyle: { color: e.totalPl > 0 ? '#28a745' : '#dc3545' }
                    }))
                }]
            }, true);
        }

        function renderHistogram(id, hist, name, color) {
            chart(id).setOption({
                tooltip: { trigger: 'axis', axisPointer: { type: 'shadow' } },
                xAxis: { type: 'category', data: hist.labels, axisLabel: { rotate: 45 } },
                yAxis: { type: 'value', name: 'Number of Trades' },
                series: [{ name: name, type: 'bar', barCategoryGap: '0%', itemStyle: { color: color }, data: hist.counts }]
            }, true);
        }

        function renderOutcome(vm) {
            chart('chart-outcome').setOption({
                tooltip: { trigger: 'axis', axisPointer: { type: 'shadow' } },
                legend: { data: ['Profitable', 'Losing'] },
                xAxis: { type: 'category', data: vm.holdingOutcomes.labels, axisLabel: { rotate: 45 } },
                yAxis: { type: 'value', name: 'Density' },
                series: [
                    {
                        name: 'Profitable',
                        type: 'bar',
                        barCategoryGap: '0%',
                        itemStyle: { color: 'green', opacity: 0.7 },
                        data: vm.holdingOutcomes.profitable
                    },
                    {
                        name: 'Losing',
                        type: 'bar',
                        barGap: '-100%',
                        barCategoryGap: '0%',
                        itemStyle: { color: 'red', opacity: 0.7 },
                        data: vm.holdingOutcomes.losing
                    }
                ]
            }, true);
        }

        function render(vm) {
            renderMetrics(vm);
            renderCumulative(vm);
            renderRanking('chart-top', vm.topInstruments);
            renderRanking('chart-bottom', vm.bottomInstruments);
            renderHistogram('chart-holding', vm.holdingPeriods, 'Holding Period (Days)', '#5470c6');
            renderOutcome(vm);
            renderHistogram('chart-pl', vm.realizedPl, 'Realized P/L ($)', '#5470c6');
        }

        function loadReport() {
            fetch('/api/report')
                .then(resp => {
                    if (!resp.ok) { throw new Error('report unavailable'); }
                    return resp.json();
                })
                .then(render)
                .catch(err => console.error('failed to load report:', err));
        }

        function connectWebSocket() {
            const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
            const ws = new WebSocket(proto + '//' + location.host + '/ws');
            ws.onmessage = function() { loadReport(); };
            ws.onclose = function() { setTimeout(connectWebSocket, 5000); };
        }

        window.addEventListener('resize', function() {
            Object.values(charts).forEach(c => c.resize());
        });

        loadReport();
        connectWebSocket();
    </script>
</body>
</html>
`
